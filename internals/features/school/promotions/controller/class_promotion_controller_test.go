package controller_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raportku_backend/internals/constants"
	"raportku_backend/internals/databases/inmem"
	"raportku_backend/internals/features/school/promotions/dto"
	promoRoute "raportku_backend/internals/features/school/promotions/route"
	"raportku_backend/internals/features/school/promotions/service"
	reportModel "raportku_backend/internals/features/school/report_cards/model"
	"raportku_backend/internals/testutil"
)

func newApp(st *inmem.Store, role string, userID uuid.UUID) *fiber.App {
	app := testutil.NewApp()
	api := app.Group("/api/u", testutil.AsCaller(role, userID))
	promoRoute.ClassPromotionRoutes(api, service.NewProcessor(st.PromotionRepo()))
	return app
}

func TestSubmitPromotions_HTTP(t *testing.T) {
	st := inmem.New()
	s := testutil.NewSchool(t, st)
	adminID := uuid.New()
	admin := newApp(st, constants.RoleAdmin, adminID)

	status, body := testutil.Do(t, admin, http.MethodPost, "/api/u/promotions", map[string]any{
		"class_group_id": s.ClassGroup.ClassGroupID,
		"decisions": []map[string]any{
			{"student_id": s.Students[0].StudentID, "status": "PROMOTED", "to_class_group_id": s.NextClassGroup.ClassGroupID},
			{"student_id": s.Students[1].StudentID, "status": "retained", "to_class_group_id": s.ClassGroup.ClassGroupID, "note": "  remedial MTK "},
			{"student_id": s.Students[2].StudentID, "status": "transferred"},
		},
	})
	require.Equal(t, fiber.StatusCreated, status, body.Message)
	var rows []dto.ClassPromotionResponse
	body.Decode(t, &rows)
	require.Len(t, rows, 3)

	byStudent := map[uuid.UUID]dto.ClassPromotionResponse{}
	for _, r := range rows {
		byStudent[r.StudentID] = r
		require.NotNil(t, r.DecidedBy)
		assert.Equal(t, adminID, *r.DecidedBy)
	}
	ani := byStudent[s.Students[0].StudentID]
	assert.Equal(t, reportModel.PromotionPromoted, ani.Status)
	require.NotNil(t, ani.ToTermID)
	assert.Equal(t, s.NextTerm.AcademicTermID, *ani.ToTermID)
	budi := byStudent[s.Students[1].StudentID]
	require.NotNil(t, budi.Note)
	assert.Equal(t, "remedial MTK", *budi.Note)
	assert.Nil(t, byStudent[s.Students[2].StudentID].ToClassGroupID)

	teacher := newApp(st, constants.RoleTeacher, uuid.New())
	status, body = testutil.Do(t, teacher, http.MethodGet,
		"/api/u/promotions?class_group_id="+s.ClassGroup.ClassGroupID.String(), nil)
	require.Equal(t, fiber.StatusOK, status)
	body.Decode(t, &rows)
	assert.Len(t, rows, 3)
}

func TestSubmitPromotions_RejectsWholeBatch(t *testing.T) {
	st := inmem.New()
	s := testutil.NewSchool(t, st)
	admin := newApp(st, constants.RoleAdmin, uuid.New())

	status, body := testutil.Do(t, admin, http.MethodPost, "/api/u/promotions", map[string]any{
		"class_group_id": s.ClassGroup.ClassGroupID,
		"decisions": []map[string]any{
			{"student_id": s.Students[0].StudentID, "status": "promoted", "to_class_group_id": s.ClassGroup.ClassGroupID},
			{"student_id": s.Students[1].StudentID, "status": "pending"},
			{"student_id": s.Students[2].StudentID, "status": "graduated"},
		},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, []string{"same_term"}, body.Errors["decisions[0].to_class_group_id"])
	assert.Contains(t, body.Errors, "decisions[1].status")
	assert.Empty(t, st.Promotions())
}

func TestSubmitPromotions_TeacherForbidden(t *testing.T) {
	st := inmem.New()
	s := testutil.NewSchool(t, st)
	teacher := newApp(st, constants.RoleTeacher, uuid.New())

	status, body := testutil.Do(t, teacher, http.MethodPost, "/api/u/promotions", map[string]any{
		"class_group_id": s.ClassGroup.ClassGroupID,
		"decisions":      []map[string]any{{"student_id": s.Students[0].StudentID, "status": "graduated"}},
	})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body.ErrorCode)
}
