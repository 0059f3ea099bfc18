// file: internals/features/school/academics/subjects/dto/subject_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	"raportku_backend/internals/features/school/academics/subjects/model"
)

/* =========================================================
   SUBJECT
========================================================= */

type SubjectCreateDTO struct {
	SubjectCode string `json:"subject_code" validate:"required,min=2,max=24"`
	SubjectName string `json:"subject_name" validate:"required,min=2,max=120"`
}

func (p *SubjectCreateDTO) ToModel() model.SubjectModel {
	return model.SubjectModel{
		SubjectCode: strings.ToUpper(strings.TrimSpace(p.SubjectCode)),
		SubjectName: strings.TrimSpace(p.SubjectName),
	}
}

type SubjectResponse struct {
	SubjectID   uuid.UUID `json:"subject_id"`
	SubjectCode string    `json:"subject_code"`
	SubjectName string    `json:"subject_name"`
}

func FromModel(m model.SubjectModel) SubjectResponse {
	return SubjectResponse{SubjectID: m.SubjectID, SubjectCode: m.SubjectCode, SubjectName: m.SubjectName}
}

/* =========================================================
   KKM per (subject, term)
========================================================= */

type KKMUpsertDTO struct {
	TermID uuid.UUID `json:"term_id" validate:"required"`
	Value  *float64  `json:"value"   validate:"required,gte=0,lte=100"`
}

type KKMResponse struct {
	SubjectID   uuid.UUID `json:"subject_id"`
	SubjectCode string    `json:"subject_code"`
	TermID      uuid.UUID `json:"term_id"`
	Value       float64   `json:"value"`
	// true bila belum diisi dan memakai default
	IsDefault bool `json:"is_default"`
}
