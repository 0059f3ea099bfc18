// file: internals/features/school/attendance/model/attendance_records_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

/* ======================================================
   ENUM: attendance status
====================================================== */

type AttendanceStatus string

const (
	AttendanceUnmarked AttendanceStatus = "unmarked"
	AttendancePresent  AttendanceStatus = "present"
	AttendanceAbsent   AttendanceStatus = "absent"
	AttendanceSick     AttendanceStatus = "sick"
	AttendancePermit   AttendanceStatus = "permit"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceUnmarked, AttendancePresent, AttendanceAbsent, AttendanceSick, AttendancePermit:
		return true
	}
	return false
}

type AttendanceRecordModel struct {
	AttendanceRecordID        uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_record_id" json:"attendance_record_id"`
	AttendanceRecordSessionID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_records_session_student,priority:1;column:attendance_record_session_id" json:"attendance_record_session_id"`
	AttendanceRecordStudentID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_records_session_student,priority:2;index;column:attendance_record_student_id" json:"attendance_record_student_id"`
	AttendanceRecordStatus    AttendanceStatus `gorm:"type:varchar(16);not null;default:'unmarked';column:attendance_record_status" json:"attendance_record_status"`
	AttendanceRecordNote      *string          `gorm:"type:text;column:attendance_record_note" json:"attendance_record_note,omitempty"`

	AttendanceRecordCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:attendance_record_created_at" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:attendance_record_updated_at" json:"attendance_record_updated_at"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }
