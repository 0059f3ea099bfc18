// file: internals/features/school/promotions/service/gorm_repository.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	classModel "raportku_backend/internals/features/school/classes/class_groups/model"
	classService "raportku_backend/internals/features/school/classes/class_groups/service"
	promoModel "raportku_backend/internals/features/school/promotions/model"
	reportModel "raportku_backend/internals/features/school/report_cards/model"
	"raportku_backend/internals/helpers/apperrors"
)

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(ctx context.Context, fn func(Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

func (r *gormRepository) FindClassGroup(ctx context.Context, id uuid.UUID) (*classModel.ClassGroupModel, error) {
	return classService.FindClassGroup(ctx, r.db, id)
}

func (r *gormRepository) RosterSet(ctx context.Context, classGroupID, termID uuid.UUID) (map[uuid.UUID]bool, error) {
	return classService.RosterSet(ctx, r.db, classGroupID, termID)
}

func (r *gormRepository) UpsertPromotions(ctx context.Context, rows []promoModel.ClassPromotionModel) error {
	if len(rows) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "class_promotion_student_id"},
			{Name: "class_promotion_from_term_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"class_promotion_from_class_group_id",
			"class_promotion_status",
			"class_promotion_to_class_group_id",
			"class_promotion_to_term_id",
			"class_promotion_note",
			"class_promotion_decided_by",
			"class_promotion_updated_at",
		}),
	}).Create(&rows).Error
	return apperrors.FromDB(err)
}

func (r *gormRepository) SyncReportCardStatus(ctx context.Context, termID, studentID uuid.UUID, status reportModel.PromotionStatus) error {
	err := r.db.WithContext(ctx).
		Model(&reportModel.ReportCardModel{}).
		Where("report_card_term_id = ? AND report_card_student_id = ? AND report_card_locked_at IS NULL", termID, studentID).
		Update("report_card_promotion_status", status).Error
	return errors.Wrap(err, "sinkron status rapor")
}

func (r *gormRepository) ListByClassGroup(ctx context.Context, classGroupID, termID uuid.UUID) ([]promoModel.ClassPromotionModel, error) {
	var rows []promoModel.ClassPromotionModel
	err := r.db.WithContext(ctx).
		Model(&promoModel.ClassPromotionModel{}).
		Select("class_promotions.*").
		Joins("JOIN students ON students.student_id = class_promotions.class_promotion_student_id").
		Where("class_promotion_from_class_group_id = ? AND class_promotion_from_term_id = ?", classGroupID, termID).
		Order("students.student_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list keputusan kenaikan")
	}
	return rows, nil
}
