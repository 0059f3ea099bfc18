package calc

import (
	attendanceModel "raportku_backend/internals/features/school/attendance/model"
)

// AttendanceSummary: hitungan per sesi pertemuan, bukan per hari kalender.
type AttendanceSummary struct {
	SickDays   int `json:"sick_days"`
	PermitDays int `json:"permit_days"`
	AbsentDays int `json:"absent_days"`
}

func (s AttendanceSummary) TotalAbsence() int {
	return s.SickDays + s.PermitDays + s.AbsentDays
}

// TallyAttendance: present & unmarked tidak dihitung.
func TallyAttendance(statuses []attendanceModel.AttendanceStatus) AttendanceSummary {
	var out AttendanceSummary
	for _, st := range statuses {
		switch st {
		case attendanceModel.AttendanceSick:
			out.SickDays++
		case attendanceModel.AttendancePermit:
			out.PermitDays++
		case attendanceModel.AttendanceAbsent:
			out.AbsentDays++
		}
	}
	return out
}
