// file: internals/features/school/attendance/service/repository.go
package service

import (
	"context"

	"github.com/google/uuid"

	attendanceModel "raportku_backend/internals/features/school/attendance/model"
	taModel "raportku_backend/internals/features/school/classes/teaching_assignments/model"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(r Repository) error) error

	ActiveTermID(ctx context.Context) (uuid.UUID, error)
	FindAssignment(ctx context.Context, id uuid.UUID) (*taModel.TeachingAssignmentModel, error)
	RosterStudentIDs(ctx context.Context, classGroupID, termID uuid.UUID) ([]uuid.UUID, error)

	// EnsureSession: sesi per (assignment, tanggal); yang sudah ada dipakai ulang.
	EnsureSession(ctx context.Context, s *attendanceModel.AttendanceSessionModel) error
	FindSession(ctx context.Context, id uuid.UUID) (*attendanceModel.AttendanceSessionModel, error)
	// SeedRecords membuat record "unmarked"; record yang sudah ada tidak disentuh.
	SeedRecords(ctx context.Context, sessionID uuid.UUID, studentIDs []uuid.UUID) error
	ListRecords(ctx context.Context, sessionID uuid.UUID) ([]attendanceModel.AttendanceRecordModel, error)
	UpdateRecords(ctx context.Context, rows []attendanceModel.AttendanceRecordModel) error

	// StudentStatuses: status semua record siswa pada term (melalui sesi → penugasan).
	StudentStatuses(ctx context.Context, studentID, termID uuid.UUID) ([]attendanceModel.AttendanceStatus, error)
}
