package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raportku_backend/internals/constants"
	"raportku_backend/internals/databases/inmem"
	"raportku_backend/internals/features/school/assessments/dto"
	assessmentRoute "raportku_backend/internals/features/school/assessments/route"
	"raportku_backend/internals/features/school/assessments/service"
	"raportku_backend/internals/testutil"
)

func newApp(st *inmem.Store, role string) *fiber.App {
	app := testutil.NewApp()
	api := app.Group("/api/u", testutil.AsCaller(role, uuid.New()))
	assessmentRoute.AssessmentRoutes(api, service.NewScoreService(st.AssessmentRepo()))
	return app
}

func createAssessment(t *testing.T, app *fiber.App, taID uuid.UUID, maxScore float64) dto.AssessmentResponse {
	t.Helper()
	status, body := testutil.Do(t, app, http.MethodPost, "/api/u/assessments", map[string]any{
		"assessment_teaching_assignment_id": taID,
		"assessment_title":                  "  Ulangan Harian 1 ",
		"assessment_category":               "Tugas",
		"assessment_weight":                 30,
		"assessment_max_score":              maxScore,
	})
	require.Equal(t, fiber.StatusCreated, status, body.Message)
	var out dto.AssessmentResponse
	body.Decode(t, &out)
	return out
}

func TestCreateAssessment(t *testing.T) {
	st := inmem.New()
	s := testutil.NewSchool(t, st)
	app := newApp(st, constants.RoleTeacher)

	a := createAssessment(t, app, s.Assignments[0].TeachingAssignmentID, 0)
	assert.Equal(t, "Ulangan Harian 1", a.AssessmentTitle)
	assert.EqualValues(t, "tugas", a.AssessmentCategory)
	assert.Equal(t, 100.0, a.AssessmentMaxScore)

	status, body := testutil.Do(t, app, http.MethodGet,
		"/api/u/assessments?teaching_assignment_id="+s.Assignments[0].TeachingAssignmentID.String(), nil)
	require.Equal(t, fiber.StatusOK, status)
	var rows []dto.AssessmentResponse
	body.Decode(t, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, a.AssessmentID, rows[0].AssessmentID)

	t.Run("kategori tidak dikenal", func(t *testing.T) {
		status, body := testutil.Do(t, app, http.MethodPost, "/api/u/assessments", map[string]any{
			"assessment_teaching_assignment_id": s.Assignments[0].TeachingAssignmentID,
			"assessment_title":                  "Proyek",
			"assessment_category":               "proyek",
			"assessment_weight":                 0,
		})
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.Contains(t, body.Errors, "assessment_category")
		assert.Contains(t, body.Errors, "assessment_weight")
	})

	t.Run("penugasan tidak ada", func(t *testing.T) {
		status, _ := testutil.Do(t, app, http.MethodPost, "/api/u/assessments", map[string]any{
			"assessment_teaching_assignment_id": uuid.New(),
			"assessment_title":                  "Kuis",
			"assessment_category":               "quiz",
			"assessment_weight":                 10,
		})
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}

func TestSaveScores_HTTP(t *testing.T) {
	st := inmem.New()
	s := testutil.NewSchool(t, st)
	app := newApp(st, constants.RoleTeacher)
	a := createAssessment(t, app, s.Assignments[0].TeachingAssignmentID, 100)
	path := fmt.Sprintf("/api/u/assessments/%s/scores", a.AssessmentID)

	t.Run("satu nilai di luar rentang menolak semua", func(t *testing.T) {
		status, body := testutil.Do(t, app, http.MethodPut, path, map[string]any{
			"scores": []map[string]any{
				{"student_id": s.Students[0].StudentID, "score": 88},
				{"student_id": s.Students[1].StudentID, "score": 101},
			},
		})
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.Equal(t, "VALIDATION_ERROR", body.ErrorCode)
		assert.Len(t, body.Errors, 1)
		assert.Contains(t, body.Errors, "scores[1].score")
		assert.Empty(t, st.Scores())
	})

	t.Run("nilai kosong ditolak validator", func(t *testing.T) {
		status, body := testutil.Do(t, app, http.MethodPut, path, map[string]any{
			"scores": []map[string]any{{"student_id": s.Students[0].StudentID}},
		})
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.Equal(t, []string{"required"}, body.Errors["scores[0].score"])
	})

	t.Run("tersimpan lalu bisa dibaca", func(t *testing.T) {
		status, body := testutil.Do(t, app, http.MethodPut, path, map[string]any{
			"scores": []map[string]any{
				{"student_id": s.Students[0].StudentID, "score": 88},
				{"student_id": s.Students[1].StudentID, "score": 0},
			},
		})
		require.Equal(t, fiber.StatusOK, status, body.Message)

		status, body = testutil.Do(t, app, http.MethodGet, path, nil)
		require.Equal(t, fiber.StatusOK, status)
		var rows []dto.ScoreResponse
		body.Decode(t, &rows)
		got := map[uuid.UUID]float64{}
		for _, r := range rows {
			got[r.StudentID] = r.Score
		}
		assert.Equal(t, map[uuid.UUID]float64{
			s.Students[0].StudentID: 88,
			s.Students[1].StudentID: 0,
		}, got)
	})
}

func TestAssessments_ParentForbidden(t *testing.T) {
	st := inmem.New()
	s := testutil.NewSchool(t, st)
	app := newApp(st, constants.RoleParent)

	status, body := testutil.Do(t, app, http.MethodGet,
		"/api/u/assessments?teaching_assignment_id="+s.Assignments[0].TeachingAssignmentID.String(), nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body.ErrorCode)
}
