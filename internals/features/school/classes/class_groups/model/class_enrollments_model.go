// file: internals/features/school/classes/class_groups/model/class_enrollments_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ClassEnrollmentModel: siswa ↔ rombel, unik per (class_group, student).
type ClassEnrollmentModel struct {
	ClassEnrollmentID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_enrollment_id" json:"class_enrollment_id"`
	ClassEnrollmentClassGroupID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_enrollments_group_student,priority:1;column:class_enrollment_class_group_id" json:"class_enrollment_class_group_id"`
	ClassEnrollmentStudentID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_enrollments_group_student,priority:2;index;column:class_enrollment_student_id" json:"class_enrollment_student_id"`

	// denormalized dari class_groups
	ClassEnrollmentTermID uuid.UUID `gorm:"type:uuid;not null;index;column:class_enrollment_term_id" json:"class_enrollment_term_id"`

	ClassEnrollmentCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:class_enrollment_created_at" json:"class_enrollment_created_at"`
	ClassEnrollmentUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:class_enrollment_updated_at" json:"class_enrollment_updated_at"`
}

func (ClassEnrollmentModel) TableName() string { return "class_enrollments" }
