// file: internals/features/school/promotions/model/class_promotions_model.go
package model

import (
	"time"

	"github.com/google/uuid"

	reportModel "raportku_backend/internals/features/school/report_cards/model"
)

// ClassPromotionModel: keputusan akhir term per siswa, unik per (student, from_term).
type ClassPromotionModel struct {
	ClassPromotionID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_promotion_id" json:"class_promotion_id"`
	ClassPromotionStudentID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_promotions_student_term,priority:1;column:class_promotion_student_id" json:"class_promotion_student_id"`
	ClassPromotionFromTermID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_promotions_student_term,priority:2;column:class_promotion_from_term_id" json:"class_promotion_from_term_id"`
	ClassPromotionFromClassGroupID uuid.UUID `gorm:"type:uuid;not null;index;column:class_promotion_from_class_group_id" json:"class_promotion_from_class_group_id"`

	ClassPromotionStatus reportModel.PromotionStatus `gorm:"type:varchar(16);not null;column:class_promotion_status" json:"class_promotion_status"`

	// tujuan (wajib untuk promoted/retained)
	ClassPromotionToClassGroupID *uuid.UUID `gorm:"type:uuid;column:class_promotion_to_class_group_id" json:"class_promotion_to_class_group_id,omitempty"`
	ClassPromotionToTermID       *uuid.UUID `gorm:"type:uuid;column:class_promotion_to_term_id" json:"class_promotion_to_term_id,omitempty"`

	ClassPromotionNote      *string    `gorm:"type:text;column:class_promotion_note" json:"class_promotion_note,omitempty"`
	ClassPromotionDecidedBy *uuid.UUID `gorm:"type:uuid;column:class_promotion_decided_by" json:"class_promotion_decided_by,omitempty"`

	ClassPromotionCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:class_promotion_created_at" json:"class_promotion_created_at"`
	ClassPromotionUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:class_promotion_updated_at" json:"class_promotion_updated_at"`
}

func (ClassPromotionModel) TableName() string { return "class_promotions" }
