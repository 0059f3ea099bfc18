// file: internals/features/school/classes/teaching_assignments/dto/teaching_assignments_dto.go
package dto

import (
	"github.com/google/uuid"

	"raportku_backend/internals/features/school/classes/teaching_assignments/model"
)

// Term diambil dari rombel, tidak dikirim klien.
type TeachingAssignmentCreateDTO struct {
	ClassGroupID uuid.UUID `json:"class_group_id" validate:"required"`
	SubjectID    uuid.UUID `json:"subject_id"     validate:"required"`
	TeacherID    uuid.UUID `json:"teacher_id"     validate:"required"`
}

type TeachingAssignmentResponse struct {
	TeachingAssignmentID uuid.UUID `json:"teaching_assignment_id"`
	TermID               uuid.UUID `json:"term_id"`
	ClassGroupID         uuid.UUID `json:"class_group_id"`
	SubjectID            uuid.UUID `json:"subject_id"`
	SubjectCode          string    `json:"subject_code,omitempty"`
	SubjectName          string    `json:"subject_name,omitempty"`
	TeacherID            uuid.UUID `json:"teacher_id"`
}

func FromModel(m model.TeachingAssignmentModel) TeachingAssignmentResponse {
	return TeachingAssignmentResponse{
		TeachingAssignmentID: m.TeachingAssignmentID,
		TermID:               m.TeachingAssignmentTermID,
		ClassGroupID:         m.TeachingAssignmentClassGroupID,
		SubjectID:            m.TeachingAssignmentSubjectID,
		TeacherID:            m.TeachingAssignmentTeacherID,
	}
}
