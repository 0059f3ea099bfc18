package helper_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "raportku_backend/internals/helpers"
	"raportku_backend/internals/testutil"
)

func TestResolvePaging(t *testing.T) {
	cases := []struct {
		query string
		want  helper.Paging
	}{
		{query: "", want: helper.Paging{Page: 1, Offset: 0, Limit: 20}},
		{query: "?page=3&per_page=10", want: helper.Paging{Page: 3, Offset: 20, Limit: 10}},
		{query: "?page=2&limit=5", want: helper.Paging{Page: 2, Offset: 5, Limit: 5}},
		{query: "?page=-1&per_page=999", want: helper.Paging{Page: 1, Offset: 0, Limit: 200}},
		{query: "?page=x&per_page=y", want: helper.Paging{Page: 1, Offset: 0, Limit: 20}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			var got helper.Paging
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				got = helper.ResolvePaging(c, 20, 200)
				return c.SendStatus(fiber.StatusNoContent)
			})
			status, _ := testutil.Do(t, app, http.MethodGet, "/"+tc.query, nil)
			require.Equal(t, fiber.StatusNoContent, status)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPaging_Paginate(t *testing.T) {
	p := helper.Paging{Page: 2, Offset: 10, Limit: 10}.Paginate(25, 10)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
	assert.Equal(t, 10, p.Count)

	empty := helper.Paging{Page: 1, Limit: 20}.Paginate(0, 0)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}

func TestJsonList_PaginationBlock(t *testing.T) {
	app := fiber.New()
	app.Get("/with", func(c *fiber.Ctx) error {
		return helper.JsonList(c, "", []int{1, 2}, helper.Paging{Page: 1, Limit: 2}.Paginate(5, 2))
	})
	app.Get("/without", func(c *fiber.Ctx) error {
		return helper.JsonList(c, "", []int{1, 2}, nil)
	})

	req, _ := http.NewRequest(http.MethodGet, "/with", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	var body struct {
		Message    string             `json:"message"`
		Pagination *helper.Pagination `json:"pagination"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body.Message)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 3, body.Pagination.TotalPages)

	req, _ = http.NewRequest(http.MethodGet, "/without", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	body.Pagination = nil
	decodeBody(t, resp, &body)
	assert.Nil(t, body.Pagination)
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, sonic.Unmarshal(raw, dst), string(raw))
}
