// file: internals/features/school/report_cards/dto/report_card_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"raportku_backend/internals/features/school/report_cards/calc"
	"raportku_backend/internals/features/school/report_cards/model"
)

// =======================
// Request DTO
// =======================

// GenerateReportCardRequest: body opsional; term_id kosong → term aktif.
type GenerateReportCardRequest struct {
	TermID *uuid.UUID `json:"term_id,omitempty"`
}

type HomeroomNoteRequest struct {
	// null / "" → hapus catatan
	ReportCardHomeroomNote *string `json:"report_card_homeroom_note" validate:"omitempty,max=2000"`
}

func (p *HomeroomNoteRequest) Normalize() {
	if p.ReportCardHomeroomNote == nil {
		return
	}
	s := strings.TrimSpace(*p.ReportCardHomeroomNote)
	if s == "" {
		p.ReportCardHomeroomNote = nil
		return
	}
	p.ReportCardHomeroomNote = &s
}

// =======================
// Response DTO
// =======================

type ReportCardSubjectResponse struct {
	SubjectID      uuid.UUID `json:"subject_id"`
	SubjectCode    string    `json:"subject_code"`
	SubjectName    string    `json:"subject_name"`
	KnowledgeScore *float64  `json:"knowledge_score"`
	KnowledgeGrade *string   `json:"knowledge_grade"`
	SkillScore     *float64  `json:"skill_score"`
	SkillGrade     *string   `json:"skill_grade"`
	KKM            float64   `json:"kkm"`
	IsPassed       bool      `json:"is_passed"`
	Description    string    `json:"description"`
}

type ReportCardResponse struct {
	ReportCardID      uuid.UUID `json:"report_card_id"`
	ClassEnrollmentID uuid.UUID `json:"class_enrollment_id"`
	ClassGroupID      uuid.UUID `json:"class_group_id"`
	StudentID         uuid.UUID `json:"student_id"`
	TermID            uuid.UUID `json:"term_id"`

	TotalScore    *float64 `json:"total_score"`
	AverageScore  *float64 `json:"average_score"`
	Rank          int      `json:"rank"`
	TotalStudents int      `json:"total_students"`

	Attendance   calc.AttendanceSummary `json:"attendance"`
	TotalAbsence int                    `json:"total_absence"`

	PromotionStatus model.PromotionStatus `json:"promotion_status"`
	HomeroomNote    *string               `json:"homeroom_note,omitempty"`
	FailedSubjects  []string              `json:"failed_subjects"`
	Policy          datatypes.JSON        `json:"policy,omitempty"`

	IsLocked    bool       `json:"is_locked"`
	LockedAt    *time.Time `json:"locked_at,omitempty"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`

	Subjects []ReportCardSubjectResponse `json:"subjects,omitempty"`
}

func FromModel(m model.ReportCardModel) ReportCardResponse {
	failed := []string(m.ReportCardFailedSubjects)
	if failed == nil {
		failed = []string{}
	}
	out := ReportCardResponse{
		ReportCardID:      m.ReportCardID,
		ClassEnrollmentID: m.ReportCardClassEnrollmentID,
		ClassGroupID:      m.ReportCardClassGroupID,
		StudentID:         m.ReportCardStudentID,
		TermID:            m.ReportCardTermID,
		TotalScore:        m.ReportCardTotalScore,
		AverageScore:      m.ReportCardAverageScore,
		Rank:              m.ReportCardRank,
		TotalStudents:     m.ReportCardTotalStudents,
		Attendance: calc.AttendanceSummary{
			SickDays:   m.ReportCardSickDays,
			PermitDays: m.ReportCardPermitDays,
			AbsentDays: m.ReportCardAbsentDays,
		},
		TotalAbsence:    m.TotalAbsence(),
		PromotionStatus: m.ReportCardPromotionStatus,
		HomeroomNote:    m.ReportCardHomeroomNote,
		FailedSubjects:  failed,
		Policy:          m.ReportCardPolicySnapshot,
		IsLocked:        m.IsLocked(),
		LockedAt:        m.ReportCardLockedAt,
		GeneratedAt:     m.ReportCardGeneratedAt,
	}
	for _, s := range m.Subjects {
		out.Subjects = append(out.Subjects, ReportCardSubjectResponse{
			SubjectID:      s.ReportCardSubjectSubjectID,
			SubjectCode:    s.ReportCardSubjectSubjectCode,
			SubjectName:    s.ReportCardSubjectSubjectName,
			KnowledgeScore: s.ReportCardSubjectKnowledgeScore,
			KnowledgeGrade: s.ReportCardSubjectKnowledgeGrade,
			SkillScore:     s.ReportCardSubjectSkillScore,
			SkillGrade:     s.ReportCardSubjectSkillGrade,
			KKM:            s.ReportCardSubjectKKM,
			IsPassed:       s.ReportCardSubjectIsPassed,
			Description:    s.ReportCardSubjectDescription,
		})
	}
	return out
}

func FromModels(rows []model.ReportCardModel) []ReportCardResponse {
	out := make([]ReportCardResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
