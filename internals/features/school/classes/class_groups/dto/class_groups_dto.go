// file: internals/features/school/classes/class_groups/dto/class_groups_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	"raportku_backend/internals/features/school/classes/class_groups/model"
)

type ClassGroupCreateDTO struct {
	ClassGroupTermID            uuid.UUID  `json:"class_group_term_id"                       validate:"required"`
	ClassGroupName              string     `json:"class_group_name"                          validate:"required,min=1,max=80"`
	ClassGroupGradeLevel        int        `json:"class_group_grade_level"                   validate:"required,min=1,max=13"`
	ClassGroupHomeroomTeacherID *uuid.UUID `json:"class_group_homeroom_teacher_id,omitempty"`
}

func (p *ClassGroupCreateDTO) ToModel() model.ClassGroupModel {
	return model.ClassGroupModel{
		ClassGroupTermID:            p.ClassGroupTermID,
		ClassGroupName:              strings.TrimSpace(p.ClassGroupName),
		ClassGroupGradeLevel:        p.ClassGroupGradeLevel,
		ClassGroupHomeroomTeacherID: p.ClassGroupHomeroomTeacherID,
	}
}

type EnrollDTO struct {
	StudentIDs []uuid.UUID `json:"student_ids" validate:"required,min=1,max=200"`
}

type ClassGroupResponse struct {
	ClassGroupID                uuid.UUID  `json:"class_group_id"`
	ClassGroupTermID            uuid.UUID  `json:"class_group_term_id"`
	ClassGroupName              string     `json:"class_group_name"`
	ClassGroupGradeLevel        int        `json:"class_group_grade_level"`
	ClassGroupHomeroomTeacherID *uuid.UUID `json:"class_group_homeroom_teacher_id,omitempty"`
}

func FromModel(m model.ClassGroupModel) ClassGroupResponse {
	return ClassGroupResponse{
		ClassGroupID:                m.ClassGroupID,
		ClassGroupTermID:            m.ClassGroupTermID,
		ClassGroupName:              m.ClassGroupName,
		ClassGroupGradeLevel:        m.ClassGroupGradeLevel,
		ClassGroupHomeroomTeacherID: m.ClassGroupHomeroomTeacherID,
	}
}

// RosterItem: baris roster (enrollment + identitas siswa).
type RosterItem struct {
	ClassEnrollmentID uuid.UUID `json:"class_enrollment_id"`
	StudentID         uuid.UUID `json:"student_id"`
	StudentNIS        string    `json:"student_nis"`
	StudentName       string    `json:"student_name"`
}
