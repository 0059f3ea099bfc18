package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	attendanceModel "raportku_backend/internals/features/school/attendance/model"
)

func TestTallyAttendance(t *testing.T) {
	got := TallyAttendance([]attendanceModel.AttendanceStatus{
		attendanceModel.AttendancePresent,
		attendanceModel.AttendanceSick,
		attendanceModel.AttendanceUnmarked,
		attendanceModel.AttendanceAbsent,
		attendanceModel.AttendancePermit,
		attendanceModel.AttendanceSick,
	})

	assert.Equal(t, AttendanceSummary{SickDays: 2, PermitDays: 1, AbsentDays: 1}, got)
	assert.Equal(t, 4, got.TotalAbsence())
}

func TestTallyAttendance_UnmarkedNotCounted(t *testing.T) {
	got := TallyAttendance([]attendanceModel.AttendanceStatus{attendanceModel.AttendanceUnmarked})
	assert.Zero(t, got.TotalAbsence())

	none := TallyAttendance(nil)
	assert.Equal(t, AttendanceSummary{}, none)
}
