// file: internals/features/school/classes/class_groups/model/class_groups_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassGroupModel: satu rombel untuk satu term.
type ClassGroupModel struct {
	ClassGroupID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_group_id" json:"class_group_id"`
	ClassGroupTermID uuid.UUID `gorm:"type:uuid;not null;index;column:class_group_term_id" json:"class_group_term_id"`

	// Example: "VII-A"
	ClassGroupName       string `gorm:"type:varchar(80);not null;column:class_group_name" json:"class_group_name"`
	ClassGroupGradeLevel int    `gorm:"type:int;not null;default:1;column:class_group_grade_level" json:"class_group_grade_level"`

	// Wali kelas (opsional)
	ClassGroupHomeroomTeacherID *uuid.UUID `gorm:"type:uuid;column:class_group_homeroom_teacher_id" json:"class_group_homeroom_teacher_id,omitempty"`

	ClassGroupCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:class_group_created_at" json:"class_group_created_at"`
	ClassGroupUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:class_group_updated_at" json:"class_group_updated_at"`
	ClassGroupDeletedAt gorm.DeletedAt `gorm:"column:class_group_deleted_at;index" json:"class_group_deleted_at,omitempty"`
}

func (ClassGroupModel) TableName() string { return "class_groups" }

func (m *ClassGroupModel) BeforeSave(tx *gorm.DB) error {
	m.ClassGroupName = strings.TrimSpace(m.ClassGroupName)
	return nil
}
