package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raportku_backend/internals/databases/inmem"
	attendanceModel "raportku_backend/internals/features/school/attendance/model"
	"raportku_backend/internals/features/school/attendance/service"
	classModel "raportku_backend/internals/features/school/classes/class_groups/model"
	studentModel "raportku_backend/internals/features/school/students/model"
	"raportku_backend/internals/helpers/apperrors"
	"raportku_backend/internals/testutil"
)

var day = time.Date(2025, 9, 1, 7, 30, 0, 0, time.UTC)

func TestCreateSession_SeedsUnmarked(t *testing.T) {
	st := inmem.New()
	s := testutil.NewSchool(t, st, "Ani", "Budi", "Citra", "Dewi", "Eko")
	svc := service.NewAttendanceService(st.AttendanceRepo())
	ctx := context.Background()

	out, err := svc.CreateSession(ctx, service.CreateSessionInput{TeachingAssignmentID: s.Assignments[0].TeachingAssignmentID, Date: day})
	require.NoError(t, err)
	require.Len(t, out.Records, 5)
	for _, r := range out.Records {
		assert.Equal(t, attendanceModel.AttendanceUnmarked, r.AttendanceRecordStatus)
	}
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), out.Session.AttendanceSessionDate)

	// siswa baru masuk rombel lalu sesi dibuat ulang → hanya dia yang ditambahkan
	fajar := studentModel.StudentModel{StudentNIS: "20259", StudentName: "Fajar", StudentIsActive: true}
	st.Put(&fajar)
	st.Put(&classModel.ClassEnrollmentModel{
		ClassEnrollmentClassGroupID: s.ClassGroup.ClassGroupID,
		ClassEnrollmentStudentID:    fajar.StudentID,
		ClassEnrollmentTermID:       s.Term.AcademicTermID,
	})
	again, err := svc.CreateSession(ctx, service.CreateSessionInput{TeachingAssignmentID: s.Assignments[0].TeachingAssignmentID, Date: day})
	require.NoError(t, err)
	assert.Equal(t, out.Session.AttendanceSessionID, again.Session.AttendanceSessionID)
	assert.Len(t, again.Records, 6)
	assert.Len(t, st.AttendanceRecords(), 6)
}

// 5 siswa: 3 hadir, 1 sakit, 1 belum ditandai.
func TestMark_SummaryCountsOnlyAbsences(t *testing.T) {
	st := inmem.New()
	s := testutil.NewSchool(t, st, "Ani", "Budi", "Citra", "Dewi", "Eko")
	svc := service.NewAttendanceService(st.AttendanceRepo())
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx, service.CreateSessionInput{TeachingAssignmentID: s.Assignments[1].TeachingAssignmentID, Date: day})
	require.NoError(t, err)

	_, err = svc.Mark(ctx, sess.Session.AttendanceSessionID, []service.MarkInput{
		{StudentID: s.Students[0].StudentID, Status: attendanceModel.AttendancePresent},
		{StudentID: s.Students[1].StudentID, Status: attendanceModel.AttendancePresent},
		{StudentID: s.Students[2].StudentID, Status: attendanceModel.AttendancePresent},
		{StudentID: s.Students[3].StudentID, Status: attendanceModel.AttendanceSick},
	})
	require.NoError(t, err)

	dewi, err := svc.StudentTermSummary(ctx, s.Students[3].StudentID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, dewi.SickDays)
	assert.Zero(t, dewi.AbsentDays)
	assert.Equal(t, 1, dewi.TotalAbsence)

	eko, err := svc.StudentTermSummary(ctx, s.Students[4].StudentID, &s.Term.AcademicTermID)
	require.NoError(t, err)
	assert.Zero(t, eko.SickDays)
	assert.Zero(t, eko.PermitDays)
	assert.Zero(t, eko.AbsentDays)
	assert.Zero(t, eko.TotalAbsence)
}

func TestMark_AllOrNothing(t *testing.T) {
	st := inmem.New()
	s := testutil.NewSchool(t, st)
	svc := service.NewAttendanceService(st.AttendanceRepo())
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx, service.CreateSessionInput{TeachingAssignmentID: s.Assignments[0].TeachingAssignmentID, Date: day})
	require.NoError(t, err)

	_, err = svc.Mark(ctx, sess.Session.AttendanceSessionID, []service.MarkInput{
		{StudentID: s.Students[0].StudentID, Status: attendanceModel.AttendanceAbsent},
		{StudentID: s.Students[1].StudentID, Status: "bolos"},
		{StudentID: uuid.New(), Status: attendanceModel.AttendancePresent},
	})
	ve, ok := apperrors.IsValidation(err)
	require.True(t, ok, "err = %v", err)
	assert.Contains(t, ve.FieldMap(), "records[1].status")
	assert.Equal(t, []string{"not_in_session"}, ve.FieldMap()["records[2].student_id"])

	for _, r := range st.AttendanceRecords() {
		assert.Equal(t, attendanceModel.AttendanceUnmarked, r.AttendanceRecordStatus)
	}

	st.FailWrites(errors.New("deadlock"))
	_, err = svc.Mark(ctx, sess.Session.AttendanceSessionID, []service.MarkInput{
		{StudentID: s.Students[0].StudentID, Status: attendanceModel.AttendanceAbsent},
		{StudentID: s.Students[1].StudentID, Status: attendanceModel.AttendancePermit},
	})
	var te *apperrors.TransactionError
	require.True(t, errors.As(err, &te))
	st.FailWrites(nil)
	for _, r := range st.AttendanceRecords() {
		assert.Equal(t, attendanceModel.AttendanceUnmarked, r.AttendanceRecordStatus)
	}
}

func TestStudentTermSummary_NoActiveTerm(t *testing.T) {
	svc := service.NewAttendanceService(inmem.New().AttendanceRepo())
	_, err := svc.StudentTermSummary(context.Background(), uuid.New(), nil)
	assert.True(t, errors.Is(err, apperrors.ErrNoActiveTerm))
}
