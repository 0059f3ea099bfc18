// file: internals/features/school/attendance/model/attendance_sessions_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceSessionModel: satu pertemuan (tanggal) dari satu teaching assignment.
type AttendanceSessionModel struct {
	AttendanceSessionID                   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_session_id" json:"attendance_session_id"`
	AttendanceSessionTeachingAssignmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_sessions_assignment_date,priority:1;column:attendance_session_teaching_assignment_id" json:"attendance_session_teaching_assignment_id"`
	AttendanceSessionDate                 time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_sessions_assignment_date,priority:2;column:attendance_session_date" json:"attendance_session_date"`

	AttendanceSessionTopic *string `gorm:"type:varchar(180);column:attendance_session_topic" json:"attendance_session_topic,omitempty"`

	AttendanceSessionCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:attendance_session_created_at" json:"attendance_session_created_at"`
	AttendanceSessionUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:attendance_session_updated_at" json:"attendance_session_updated_at"`
}

func (AttendanceSessionModel) TableName() string { return "attendance_sessions" }
