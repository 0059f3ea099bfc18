// file: internals/features/school/students/dto/students_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"raportku_backend/internals/features/school/students/model"
)

type StudentCreateDTO struct {
	StudentNIS         string     `json:"student_nis"                    validate:"required,min=3,max=32"`
	StudentName        string     `json:"student_name"                   validate:"required,min=2,max=120"`
	StudentGender      *string    `json:"student_gender,omitempty"       validate:"omitempty,oneof=L P"`
	StudentBirthDate   *time.Time `json:"student_birth_date,omitempty"`
	StudentParentName  *string    `json:"student_parent_name,omitempty"  validate:"omitempty,max=120"`
	StudentParentEmail *string    `json:"student_parent_email,omitempty" validate:"omitempty,email,max=160"`
}

func (p *StudentCreateDTO) Normalize() {
	p.StudentNIS = strings.TrimSpace(p.StudentNIS)
	p.StudentName = strings.TrimSpace(p.StudentName)
	if p.StudentGender != nil {
		g := strings.ToUpper(strings.TrimSpace(*p.StudentGender))
		p.StudentGender = &g
	}
}

func (p *StudentCreateDTO) ToModel() model.StudentModel {
	return model.StudentModel{
		StudentNIS:         p.StudentNIS,
		StudentName:        p.StudentName,
		StudentGender:      p.StudentGender,
		StudentBirthDate:   p.StudentBirthDate,
		StudentParentName:  p.StudentParentName,
		StudentParentEmail: p.StudentParentEmail,
		StudentIsActive:    true,
	}
}

type StudentResponse struct {
	StudentID          uuid.UUID  `json:"student_id"`
	StudentNIS         string     `json:"student_nis"`
	StudentName        string     `json:"student_name"`
	StudentGender      *string    `json:"student_gender,omitempty"`
	StudentBirthDate   *time.Time `json:"student_birth_date,omitempty"`
	StudentParentName  *string    `json:"student_parent_name,omitempty"`
	StudentParentEmail *string    `json:"student_parent_email,omitempty"`
	StudentIsActive    bool       `json:"student_is_active"`
}

func FromModel(m model.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID:          m.StudentID,
		StudentNIS:         m.StudentNIS,
		StudentName:        m.StudentName,
		StudentGender:      m.StudentGender,
		StudentBirthDate:   m.StudentBirthDate,
		StudentParentName:  m.StudentParentName,
		StudentParentEmail: m.StudentParentEmail,
		StudentIsActive:    m.StudentIsActive,
	}
}

func FromModels(rows []model.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
