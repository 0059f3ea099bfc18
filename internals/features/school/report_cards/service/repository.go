// file: internals/features/school/report_cards/service/repository.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	attendanceModel "raportku_backend/internals/features/school/attendance/model"
	"raportku_backend/internals/features/school/report_cards/calc"
	reportModel "raportku_backend/internals/features/school/report_cards/model"
)

// Member: satu siswa di cohort (roster rombel pada term).
type Member struct {
	EnrollmentID uuid.UUID
	StudentID    uuid.UUID
	StudentName  string
	ParentName   string
	ParentEmail  string
}

// Cohort: semua bahan generate rapor satu rombel untuk satu term.
type Cohort struct {
	ClassGroupID   uuid.UUID
	ClassGroupName string
	TermID         uuid.UUID
	TermLabel      string

	Members  []Member
	Subjects []calc.SubjectRef
	// KKM per subject_id; yang tidak ada → default policy
	KKM map[uuid.UUID]float64

	// student_id → subject_id → nilai
	Scores map[uuid.UUID]map[uuid.UUID][]calc.ScoreEntry
	// student_id → status kehadiran per sesi pada term
	Attendance map[uuid.UUID][]attendanceModel.AttendanceStatus

	// enrollment_id → rapor yang sudah ada (tanpa subjects)
	Existing map[uuid.UUID]reportModel.ReportCardModel
	// student_id → status keputusan kenaikan
	Promotions map[uuid.UUID]reportModel.PromotionStatus
}

// EnrollmentRef: lokasi satu enrollment.
type EnrollmentRef struct {
	EnrollmentID uuid.UUID
	ClassGroupID uuid.UUID
	StudentID    uuid.UUID
	TermID       uuid.UUID
}

// Repository: akses data rapor. WithTx menjalankan fn dalam satu transaksi.
type Repository interface {
	WithTx(ctx context.Context, fn func(r Repository) error) error

	ActiveTermID(ctx context.Context) (uuid.UUID, error)
	FindEnrollment(ctx context.Context, enrollmentID uuid.UUID) (EnrollmentRef, error)
	LoadCohort(ctx context.Context, classGroupID, termID uuid.UUID) (*Cohort, error)

	// SaveCard: upsert per (enrollment, term) lalu ganti seluruh baris subjects.
	SaveCard(ctx context.Context, card *reportModel.ReportCardModel) error
	FindCard(ctx context.Context, id uuid.UUID) (*reportModel.ReportCardModel, error)
	ListCards(ctx context.Context, classGroupID, termID uuid.UUID) ([]reportModel.ReportCardModel, error)
	SetLockedAt(ctx context.Context, id uuid.UUID, at *time.Time) error
	SetHomeroomNote(ctx context.Context, id uuid.UUID, note *string) error
}
