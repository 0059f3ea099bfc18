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
	"raportku_backend/internals/features/school/attendance/dto"
	"raportku_backend/internals/features/school/attendance/model"
	attendanceRoute "raportku_backend/internals/features/school/attendance/route"
	"raportku_backend/internals/features/school/attendance/service"
	"raportku_backend/internals/testutil"
)

func newApp(st *inmem.Store, role string, studentIDs ...uuid.UUID) *fiber.App {
	app := testutil.NewApp()
	api := app.Group("/api/u", testutil.AsCaller(role, uuid.New(), studentIDs...))
	attendanceRoute.AttendanceRoutes(api, service.NewAttendanceService(st.AttendanceRepo()))
	return app
}

func TestAttendanceFlow_HTTP(t *testing.T) {
	st := inmem.New()
	s := testutil.NewSchool(t, st)
	teacher := newApp(st, constants.RoleTeacher)

	status, body := testutil.Do(t, teacher, http.MethodPost, "/api/u/attendance-sessions", map[string]any{
		"teaching_assignment_id": s.Assignments[0].TeachingAssignmentID,
		"date":                   "2025-08-04",
	})
	require.Equal(t, fiber.StatusCreated, status, body.Message)
	var sess dto.SessionResponse
	body.Decode(t, &sess)
	assert.Equal(t, "2025-08-04", sess.Date)
	require.Len(t, sess.Records, 3)
	for _, r := range sess.Records {
		assert.Equal(t, model.AttendanceUnmarked, r.Status)
	}

	path := fmt.Sprintf("/api/u/attendance-sessions/%s/records", sess.AttendanceSessionID)
	status, body = testutil.Do(t, teacher, http.MethodPut, path, map[string]any{
		"records": []map[string]any{
			{"student_id": s.Students[0].StudentID, "status": "Present"},
			{"student_id": s.Students[1].StudentID, "status": "sick", "note": "demam"},
			{"student_id": s.Students[2].StudentID, "status": "absent"},
		},
	})
	require.Equal(t, fiber.StatusOK, status, body.Message)

	status, body = testutil.Do(t, teacher, http.MethodGet,
		fmt.Sprintf("/api/u/students/%s/attendance-summary", s.Students[1].StudentID), nil)
	require.Equal(t, fiber.StatusOK, status)
	var sum service.StudentSummary
	body.Decode(t, &sum)
	assert.Equal(t, 1, sum.SickDays)
	assert.Equal(t, 1, sum.TotalAbsence)
	assert.Equal(t, s.Term.AcademicTermID, sum.TermID)
}

func TestAttendance_Validation_HTTP(t *testing.T) {
	st := inmem.New()
	s := testutil.NewSchool(t, st)
	teacher := newApp(st, constants.RoleTeacher)

	status, body := testutil.Do(t, teacher, http.MethodPost, "/api/u/attendance-sessions", map[string]any{
		"teaching_assignment_id": s.Assignments[0].TeachingAssignmentID,
		"date":                   "04-08-2025",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, []string{"datetime"}, body.Errors["date"])

	status, body = testutil.Do(t, teacher, http.MethodPost, "/api/u/attendance-sessions", map[string]any{
		"teaching_assignment_id": s.Assignments[0].TeachingAssignmentID,
		"date":                   "2025-08-05",
	})
	require.Equal(t, fiber.StatusCreated, status)
	var sess dto.SessionResponse
	body.Decode(t, &sess)

	status, body = testutil.Do(t, teacher, http.MethodPut,
		fmt.Sprintf("/api/u/attendance-sessions/%s/records", sess.AttendanceSessionID), map[string]any{
			"records": []map[string]any{
				{"student_id": s.Students[0].StudentID, "status": "present"},
				{"student_id": s.Students[1].StudentID, "status": "terlambat"},
			},
		})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body.Errors, "records[1].status")

	status, body = testutil.Do(t, teacher, http.MethodGet,
		fmt.Sprintf("/api/u/attendance-sessions/%s/records", sess.AttendanceSessionID), nil)
	require.Equal(t, fiber.StatusOK, status)
	body.Decode(t, &sess)
	for _, r := range sess.Records {
		assert.Equal(t, model.AttendanceUnmarked, r.Status, "tidak ada perubahan yang tersimpan")
	}
}

func TestAttendanceSummary_ParentScope(t *testing.T) {
	st := inmem.New()
	s := testutil.NewSchool(t, st)
	parent := newApp(st, constants.RoleParent, s.Students[0].StudentID)

	status, _ := testutil.Do(t, parent, http.MethodGet,
		fmt.Sprintf("/api/u/students/%s/attendance-summary", s.Students[0].StudentID), nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = testutil.Do(t, parent, http.MethodGet,
		fmt.Sprintf("/api/u/students/%s/attendance-summary", s.Students[1].StudentID), nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = testutil.Do(t, parent, http.MethodPost, "/api/u/attendance-sessions", map[string]any{
		"teaching_assignment_id": s.Assignments[0].TeachingAssignmentID,
		"date":                   "2025-08-04",
	})
	assert.Equal(t, fiber.StatusForbidden, status)
}
