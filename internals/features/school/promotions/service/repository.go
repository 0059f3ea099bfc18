// file: internals/features/school/promotions/service/repository.go
package service

import (
	"context"

	"github.com/google/uuid"

	classModel "raportku_backend/internals/features/school/classes/class_groups/model"
	promoModel "raportku_backend/internals/features/school/promotions/model"
	reportModel "raportku_backend/internals/features/school/report_cards/model"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(r Repository) error) error

	FindClassGroup(ctx context.Context, id uuid.UUID) (*classModel.ClassGroupModel, error)
	RosterSet(ctx context.Context, classGroupID, termID uuid.UUID) (map[uuid.UUID]bool, error)

	// UpsertPromotions: ON CONFLICT (student, from_term) DO UPDATE.
	UpsertPromotions(ctx context.Context, rows []promoModel.ClassPromotionModel) error
	// SyncReportCardStatus menyalin status ke rapor siswa pada term asal (bila ada).
	// Rapor yang terkunci dilewati; status terbaru masuk saat buka kunci + generate ulang.
	SyncReportCardStatus(ctx context.Context, termID, studentID uuid.UUID, status reportModel.PromotionStatus) error
	ListByClassGroup(ctx context.Context, classGroupID, termID uuid.UUID) ([]promoModel.ClassPromotionModel, error)
}
