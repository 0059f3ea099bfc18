// file: internals/features/school/classes/teaching_assignments/model/teaching_assignments_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// TeachingAssignmentModel: guru mengampu mapel di satu rombel pada satu term.
type TeachingAssignmentModel struct {
	TeachingAssignmentID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:teaching_assignment_id" json:"teaching_assignment_id"`
	TeachingAssignmentTermID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_teaching_assignments_tuple,priority:1;column:teaching_assignment_term_id" json:"teaching_assignment_term_id"`
	TeachingAssignmentClassGroupID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_teaching_assignments_tuple,priority:2;index;column:teaching_assignment_class_group_id" json:"teaching_assignment_class_group_id"`
	TeachingAssignmentSubjectID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_teaching_assignments_tuple,priority:3;column:teaching_assignment_subject_id" json:"teaching_assignment_subject_id"`
	TeachingAssignmentTeacherID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_teaching_assignments_tuple,priority:4;column:teaching_assignment_teacher_id" json:"teaching_assignment_teacher_id"`

	TeachingAssignmentCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:teaching_assignment_created_at" json:"teaching_assignment_created_at"`
	TeachingAssignmentUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:teaching_assignment_updated_at" json:"teaching_assignment_updated_at"`
}

func (TeachingAssignmentModel) TableName() string { return "teaching_assignments" }
