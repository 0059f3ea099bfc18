// file: internals/features/school/attendance/service/attendance.go
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	attendanceModel "raportku_backend/internals/features/school/attendance/model"
	"raportku_backend/internals/features/school/report_cards/calc"
	"raportku_backend/internals/helpers/apperrors"
)

type CreateSessionInput struct {
	TeachingAssignmentID uuid.UUID
	Date                 time.Time
	Topic                *string
}

type SessionWithRecords struct {
	Session attendanceModel.AttendanceSessionModel  `json:"session"`
	Records []attendanceModel.AttendanceRecordModel `json:"records"`
}

type MarkInput struct {
	StudentID uuid.UUID
	Status    attendanceModel.AttendanceStatus
	Note      *string
}

type StudentSummary struct {
	StudentID uuid.UUID `json:"student_id"`
	TermID    uuid.UUID `json:"term_id"`
	calc.AttendanceSummary
	TotalAbsence int `json:"total_absence"`
}

type AttendanceService struct {
	Repo Repository
}

func NewAttendanceService(repo Repository) *AttendanceService {
	return &AttendanceService{Repo: repo}
}

// CreateSession membuat sesi dan record "unmarked" untuk seluruh roster.
// Idempotent: sesi pada tanggal yang sama dipakai ulang dan hanya siswa baru yang ditambahkan.
func (s *AttendanceService) CreateSession(ctx context.Context, in CreateSessionInput) (*SessionWithRecords, error) {
	var out *SessionWithRecords
	err := s.Repo.WithTx(ctx, func(r Repository) error {
		ta, err := r.FindAssignment(ctx, in.TeachingAssignmentID)
		if err != nil {
			return err
		}
		sess := attendanceModel.AttendanceSessionModel{
			AttendanceSessionTeachingAssignmentID: ta.TeachingAssignmentID,
			AttendanceSessionDate:                 dateOnly(in.Date),
			AttendanceSessionTopic:                in.Topic,
		}
		if err := r.EnsureSession(ctx, &sess); err != nil {
			return err
		}
		roster, err := r.RosterStudentIDs(ctx, ta.TeachingAssignmentClassGroupID, ta.TeachingAssignmentTermID)
		if err != nil {
			return err
		}
		if err := r.SeedRecords(ctx, sess.AttendanceSessionID, roster); err != nil {
			return err
		}
		recs, err := r.ListRecords(ctx, sess.AttendanceSessionID)
		if err != nil {
			return err
		}
		out = &SessionWithRecords{Session: sess, Records: recs}
		return nil
	})
	if err != nil {
		return nil, apperrors.WrapTx("buat sesi absensi", err)
	}
	return out, nil
}

// Mark: tandai kehadiran massal. Satu baris tidak valid → tidak ada yang disimpan.
func (s *AttendanceService) Mark(ctx context.Context, sessionID uuid.UUID, in []MarkInput) ([]attendanceModel.AttendanceRecordModel, error) {
	var out []attendanceModel.AttendanceRecordModel
	err := s.Repo.WithTx(ctx, func(r Repository) error {
		if _, err := r.FindSession(ctx, sessionID); err != nil {
			return err
		}
		existing, err := r.ListRecords(ctx, sessionID)
		if err != nil {
			return err
		}
		byStudent := make(map[uuid.UUID]attendanceModel.AttendanceRecordModel, len(existing))
		for _, rec := range existing {
			byStudent[rec.AttendanceRecordStudentID] = rec
		}

		if len(in) == 0 {
			return apperrors.NewValidationError(errors.New("validation failed"),
				apperrors.FieldError{Field: "records", Error: "required"})
		}
		var (
			fields []apperrors.FieldError
			rows   = make([]attendanceModel.AttendanceRecordModel, 0, len(in))
			seen   = map[uuid.UUID]bool{}
		)
		for i, m := range in {
			rec, ok := byStudent[m.StudentID]
			switch {
			case !ok:
				fields = append(fields, apperrors.FieldError{Field: fmt.Sprintf("records[%d].student_id", i), Error: "not_in_session"})
			case seen[m.StudentID]:
				fields = append(fields, apperrors.FieldError{Field: fmt.Sprintf("records[%d].student_id", i), Error: "duplicate"})
			}
			seen[m.StudentID] = true
			if !m.Status.Valid() {
				fields = append(fields, apperrors.FieldError{Field: fmt.Sprintf("records[%d].status", i), Error: "oneof=unmarked present absent sick permit"})
			}
			rec.AttendanceRecordStatus = m.Status
			rec.AttendanceRecordNote = m.Note
			rows = append(rows, rec)
		}
		if len(fields) > 0 {
			return apperrors.NewValidationError(errors.New("absensi tidak valid"), fields...)
		}
		if err := r.UpdateRecords(ctx, rows); err != nil {
			return err
		}
		out = rows
		return nil
	})
	if err != nil {
		return nil, apperrors.WrapTx("simpan absensi", err)
	}
	log.Printf("[INFO] absensi disimpan: session=%s jumlah=%d", sessionID, len(out))
	return out, nil
}

func (s *AttendanceService) ListRecords(ctx context.Context, sessionID uuid.UUID) (*SessionWithRecords, error) {
	sess, err := s.Repo.FindSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	recs, err := s.Repo.ListRecords(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &SessionWithRecords{Session: *sess, Records: recs}, nil
}

// StudentTermSummary: termID nil → term aktif.
func (s *AttendanceService) StudentTermSummary(ctx context.Context, studentID uuid.UUID, termID *uuid.UUID) (*StudentSummary, error) {
	tid := uuid.Nil
	if termID != nil {
		tid = *termID
	} else {
		id, err := s.Repo.ActiveTermID(ctx)
		if err != nil {
			return nil, err
		}
		tid = id
	}
	statuses, err := s.Repo.StudentStatuses(ctx, studentID, tid)
	if err != nil {
		return nil, err
	}
	sum := calc.TallyAttendance(statuses)
	return &StudentSummary{
		StudentID:         studentID,
		TermID:            tid,
		AttendanceSummary: sum,
		TotalAbsence:      sum.TotalAbsence(),
	}, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
