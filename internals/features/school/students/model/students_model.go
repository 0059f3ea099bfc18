// file: internals/features/school/students/model/students_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	StudentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_id" json:"student_id"`

	// Nomor Induk Siswa (unik)
	StudentNIS       string     `gorm:"type:varchar(32);not null;uniqueIndex:uq_students_nis;column:student_nis" json:"student_nis"`
	StudentName      string     `gorm:"type:varchar(120);not null;column:student_name" json:"student_name"`
	StudentGender    *string    `gorm:"type:varchar(1);column:student_gender" json:"student_gender,omitempty"` // L | P
	StudentBirthDate *time.Time `gorm:"type:date;column:student_birth_date" json:"student_birth_date,omitempty"`

	// Kontak wali (notifikasi rapor)
	StudentParentName  *string `gorm:"type:varchar(120);column:student_parent_name" json:"student_parent_name,omitempty"`
	StudentParentEmail *string `gorm:"type:varchar(160);column:student_parent_email" json:"student_parent_email,omitempty"`

	StudentIsActive bool `gorm:"not null;default:true;column:student_is_active" json:"student_is_active"`

	StudentCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:student_created_at" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:student_updated_at" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeSave(tx *gorm.DB) error {
	m.StudentNIS = strings.TrimSpace(m.StudentNIS)
	m.StudentName = strings.TrimSpace(m.StudentName)
	if m.StudentParentEmail != nil {
		e := strings.ToLower(strings.TrimSpace(*m.StudentParentEmail))
		if e == "" {
			m.StudentParentEmail = nil
		} else {
			m.StudentParentEmail = &e
		}
	}
	return nil
}
