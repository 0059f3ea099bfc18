// file: internals/features/school/academics/academic_terms/model/academic_terms_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AcademicTermModel struct {
	AcademicTermID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:academic_term_id" json:"academic_term_id"`

	// Example academic_year: "2025/2026"
	AcademicTermAcademicYear string `gorm:"type:text;not null;column:academic_term_academic_year" json:"academic_term_academic_year"`
	// Example name: "Ganjil" | "Genap" | "Pendek" | "Khusus"
	AcademicTermName string `gorm:"type:text;not null;column:academic_term_name" json:"academic_term_name"`

	AcademicTermStartDate time.Time `gorm:"type:timestamptz;not null;column:academic_term_start_date" json:"academic_term_start_date"`
	AcademicTermEndDate   time.Time `gorm:"type:timestamptz;not null;column:academic_term_end_date" json:"academic_term_end_date"`

	// Hanya satu term aktif di seluruh sistem (partial unique index)
	AcademicTermIsActive bool `gorm:"not null;default:false;column:academic_term_is_active" json:"academic_term_is_active"`

	AcademicTermCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:academic_term_created_at" json:"academic_term_created_at"`
	AcademicTermUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:academic_term_updated_at" json:"academic_term_updated_at"`
	AcademicTermDeletedAt gorm.DeletedAt `gorm:"column:academic_term_deleted_at;index" json:"academic_term_deleted_at,omitempty"`
}

func (AcademicTermModel) TableName() string { return "academic_terms" }

func (m *AcademicTermModel) BeforeSave(tx *gorm.DB) error {
	if m.AcademicTermEndDate.Before(m.AcademicTermStartDate) {
		return errors.New("academic_term_end_date must be >= academic_term_start_date")
	}
	m.AcademicTermAcademicYear = strings.TrimSpace(m.AcademicTermAcademicYear)
	m.AcademicTermName = strings.TrimSpace(m.AcademicTermName)
	return nil
}

// Label: "2025/2026 Ganjil"
func (m AcademicTermModel) Label() string {
	return strings.TrimSpace(m.AcademicTermAcademicYear + " " + m.AcademicTermName)
}
