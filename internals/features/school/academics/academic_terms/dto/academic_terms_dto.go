// file: internals/features/school/academics/academic_terms/dto/academic_terms_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"raportku_backend/internals/features/school/academics/academic_terms/model"
)

// =======================
// Request DTO
// =======================

type AcademicTermCreateDTO struct {
	AcademicTermAcademicYear string `json:"academic_term_academic_year" validate:"required,min=4"`
	// Terima hanya 4 opsi ini
	AcademicTermName      string    `json:"academic_term_name"       validate:"required,oneof=Ganjil Genap Pendek Khusus"`
	AcademicTermStartDate time.Time `json:"academic_term_start_date" validate:"required"`
	// gtefield agar sejalan dg BeforeSave (end >= start)
	AcademicTermEndDate time.Time `json:"academic_term_end_date" validate:"required,gtefield=AcademicTermStartDate"`
	// pointer: bedakan "tidak dikirim" vs "false"
	AcademicTermIsActive *bool `json:"academic_term_is_active,omitempty"`
}

type AcademicTermFilterDTO struct {
	Year   *string `query:"year"   validate:"omitempty,min=4"`
	Active *bool   `query:"active" validate:"omitempty"`
}

// =======================
// Response DTO
// =======================

type AcademicTermResponseDTO struct {
	AcademicTermID           uuid.UUID `json:"academic_term_id"`
	AcademicTermAcademicYear string    `json:"academic_term_academic_year"`
	AcademicTermName         string    `json:"academic_term_name"`
	AcademicTermLabel        string    `json:"academic_term_label"`
	AcademicTermStartDate    time.Time `json:"academic_term_start_date"`
	AcademicTermEndDate      time.Time `json:"academic_term_end_date"`
	AcademicTermIsActive     bool      `json:"academic_term_is_active"`
	AcademicTermCreatedAt    time.Time `json:"academic_term_created_at"`
}

// =======================
// Helpers
// =======================

func (p *AcademicTermCreateDTO) Normalize() {
	p.AcademicTermAcademicYear = strings.TrimSpace(p.AcademicTermAcademicYear)
	p.AcademicTermName = strings.TrimSpace(p.AcademicTermName)
}

// WantsActive: default false; term baru tidak otomatis menggeser term aktif.
func (p *AcademicTermCreateDTO) WantsActive() bool {
	return p.AcademicTermIsActive != nil && *p.AcademicTermIsActive
}

func (p *AcademicTermCreateDTO) ToModel() model.AcademicTermModel {
	return model.AcademicTermModel{
		AcademicTermAcademicYear: p.AcademicTermAcademicYear,
		AcademicTermName:         p.AcademicTermName,
		AcademicTermStartDate:    p.AcademicTermStartDate,
		AcademicTermEndDate:      p.AcademicTermEndDate,
		AcademicTermIsActive:     p.WantsActive(),
	}
}

func FromModel(m model.AcademicTermModel) AcademicTermResponseDTO {
	return AcademicTermResponseDTO{
		AcademicTermID:           m.AcademicTermID,
		AcademicTermAcademicYear: m.AcademicTermAcademicYear,
		AcademicTermName:         m.AcademicTermName,
		AcademicTermLabel:        m.Label(),
		AcademicTermStartDate:    m.AcademicTermStartDate,
		AcademicTermEndDate:      m.AcademicTermEndDate,
		AcademicTermIsActive:     m.AcademicTermIsActive,
		AcademicTermCreatedAt:    m.AcademicTermCreatedAt,
	}
}

func FromModels(rows []model.AcademicTermModel) []AcademicTermResponseDTO {
	out := make([]AcademicTermResponseDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
