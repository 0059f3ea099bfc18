// file: internals/features/school/promotions/dto/class_promotion_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	promoModel "raportku_backend/internals/features/school/promotions/model"
	"raportku_backend/internals/features/school/promotions/service"
	reportModel "raportku_backend/internals/features/school/report_cards/model"
)

// =======================
// Request DTO
// =======================

type PromotionDecisionDTO struct {
	StudentID      uuid.UUID  `json:"student_id" validate:"required"`
	Status         string     `json:"status" validate:"required"`
	ToClassGroupID *uuid.UUID `json:"to_class_group_id,omitempty"`
	Note           *string    `json:"note,omitempty" validate:"omitempty,max=1000"`
}

// Aturan status / tujuan dicek di service supaya pesan per baris konsisten.
type SubmitPromotionsDTO struct {
	ClassGroupID uuid.UUID              `json:"class_group_id" validate:"required"`
	TermID       *uuid.UUID             `json:"term_id,omitempty"`
	Decisions    []PromotionDecisionDTO `json:"decisions" validate:"required,min=1,dive"`
}

func (p *SubmitPromotionsDTO) ToInput(decidedBy *uuid.UUID) service.SubmitInput {
	in := service.SubmitInput{
		ClassGroupID: p.ClassGroupID,
		TermID:       p.TermID,
		DecidedBy:    decidedBy,
		Decisions:    make([]service.Decision, 0, len(p.Decisions)),
	}
	for _, d := range p.Decisions {
		var note *string
		if d.Note != nil {
			if s := strings.TrimSpace(*d.Note); s != "" {
				note = &s
			}
		}
		in.Decisions = append(in.Decisions, service.Decision{
			StudentID:      d.StudentID,
			Status:         reportModel.PromotionStatus(strings.ToLower(strings.TrimSpace(d.Status))),
			ToClassGroupID: d.ToClassGroupID,
			Note:           note,
		})
	}
	return in
}

// =======================
// Response DTO
// =======================

type ClassPromotionResponse struct {
	ClassPromotionID uuid.UUID                   `json:"class_promotion_id"`
	StudentID        uuid.UUID                   `json:"student_id"`
	FromTermID       uuid.UUID                   `json:"from_term_id"`
	FromClassGroupID uuid.UUID                   `json:"from_class_group_id"`
	Status           reportModel.PromotionStatus `json:"status"`
	ToClassGroupID   *uuid.UUID                  `json:"to_class_group_id,omitempty"`
	ToTermID         *uuid.UUID                  `json:"to_term_id,omitempty"`
	Note             *string                     `json:"note,omitempty"`
	DecidedBy        *uuid.UUID                  `json:"decided_by,omitempty"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

func FromModel(m promoModel.ClassPromotionModel) ClassPromotionResponse {
	return ClassPromotionResponse{
		ClassPromotionID: m.ClassPromotionID,
		StudentID:        m.ClassPromotionStudentID,
		FromTermID:       m.ClassPromotionFromTermID,
		FromClassGroupID: m.ClassPromotionFromClassGroupID,
		Status:           m.ClassPromotionStatus,
		ToClassGroupID:   m.ClassPromotionToClassGroupID,
		ToTermID:         m.ClassPromotionToTermID,
		Note:             m.ClassPromotionNote,
		DecidedBy:        m.ClassPromotionDecidedBy,
		UpdatedAt:        m.ClassPromotionUpdatedAt,
	}
}

func FromModels(rows []promoModel.ClassPromotionModel) []ClassPromotionResponse {
	out := make([]ClassPromotionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
