// file: internals/features/school/attendance/dto/attendance_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"raportku_backend/internals/features/school/attendance/model"
	"raportku_backend/internals/features/school/attendance/service"
)

// =======================
// Request DTO
// =======================

type CreateSessionRequest struct {
	TeachingAssignmentID uuid.UUID `json:"teaching_assignment_id" validate:"required"`
	// format YYYY-MM-DD
	Date  string  `json:"date"            validate:"required,datetime=2006-01-02"`
	Topic *string `json:"topic,omitempty" validate:"omitempty,max=180"`
}

func (p *CreateSessionRequest) ToInput() service.CreateSessionInput {
	d, _ := time.Parse("2006-01-02", p.Date)
	var topic *string
	if p.Topic != nil {
		if s := strings.TrimSpace(*p.Topic); s != "" {
			topic = &s
		}
	}
	return service.CreateSessionInput{
		TeachingAssignmentID: p.TeachingAssignmentID,
		Date:                 d,
		Topic:                topic,
	}
}

type MarkRowDTO struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status"     validate:"required"`
	Note      *string   `json:"note,omitempty" validate:"omitempty,max=500"`
}

// Status dicek di service agar pesan per baris seragam dengan cek roster.
type MarkRequest struct {
	Records []MarkRowDTO `json:"records" validate:"required,min=1,dive"`
}

func (p *MarkRequest) ToInput() []service.MarkInput {
	out := make([]service.MarkInput, 0, len(p.Records))
	for _, r := range p.Records {
		out = append(out, service.MarkInput{
			StudentID: r.StudentID,
			Status:    model.AttendanceStatus(strings.ToLower(strings.TrimSpace(r.Status))),
			Note:      r.Note,
		})
	}
	return out
}

// =======================
// Response DTO
// =======================

type RecordResponse struct {
	AttendanceRecordID uuid.UUID              `json:"attendance_record_id"`
	StudentID          uuid.UUID              `json:"student_id"`
	Status             model.AttendanceStatus `json:"status"`
	Note               *string                `json:"note,omitempty"`
}

type SessionResponse struct {
	AttendanceSessionID  uuid.UUID        `json:"attendance_session_id"`
	TeachingAssignmentID uuid.UUID        `json:"teaching_assignment_id"`
	Date                 string           `json:"date"`
	Topic                *string          `json:"topic,omitempty"`
	Records              []RecordResponse `json:"records"`
}

func FromRecords(rows []model.AttendanceRecordModel) []RecordResponse {
	out := make([]RecordResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, RecordResponse{
			AttendanceRecordID: r.AttendanceRecordID,
			StudentID:          r.AttendanceRecordStudentID,
			Status:             r.AttendanceRecordStatus,
			Note:               r.AttendanceRecordNote,
		})
	}
	return out
}

func FromSession(s service.SessionWithRecords) SessionResponse {
	return SessionResponse{
		AttendanceSessionID:  s.Session.AttendanceSessionID,
		TeachingAssignmentID: s.Session.AttendanceSessionTeachingAssignmentID,
		Date:                 s.Session.AttendanceSessionDate.Format("2006-01-02"),
		Topic:                s.Session.AttendanceSessionTopic,
		Records:              FromRecords(s.Records),
	}
}
