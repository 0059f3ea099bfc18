// file: internals/features/school/report_cards/model/report_card_subjects_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type ReportCardSubjectModel struct {
	ReportCardSubjectID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:report_card_subject_id" json:"report_card_subject_id"`
	ReportCardSubjectReportCardID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_report_card_subjects_card_subject,priority:1;column:report_card_subject_report_card_id" json:"report_card_subject_report_card_id"`
	ReportCardSubjectSubjectID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_report_card_subjects_card_subject,priority:2;column:report_card_subject_subject_id" json:"report_card_subject_subject_id"`

	// snapshot identitas mapel
	ReportCardSubjectSubjectCode string `gorm:"type:varchar(24);not null;column:report_card_subject_subject_code" json:"report_card_subject_subject_code"`
	ReportCardSubjectSubjectName string `gorm:"type:varchar(120);not null;column:report_card_subject_subject_name" json:"report_card_subject_subject_name"`

	ReportCardSubjectKnowledgeScore *float64 `gorm:"type:numeric(5,2);column:report_card_subject_knowledge_score" json:"report_card_subject_knowledge_score"`
	ReportCardSubjectKnowledgeGrade *string  `gorm:"type:varchar(2);column:report_card_subject_knowledge_grade" json:"report_card_subject_knowledge_grade"`
	ReportCardSubjectSkillScore     *float64 `gorm:"type:numeric(5,2);column:report_card_subject_skill_score" json:"report_card_subject_skill_score"`
	ReportCardSubjectSkillGrade     *string  `gorm:"type:varchar(2);column:report_card_subject_skill_grade" json:"report_card_subject_skill_grade"`

	// KKM saat generate
	ReportCardSubjectKKM         float64 `gorm:"type:numeric(5,2);not null;column:report_card_subject_kkm" json:"report_card_subject_kkm"`
	ReportCardSubjectIsPassed    bool    `gorm:"not null;default:true;column:report_card_subject_is_passed" json:"report_card_subject_is_passed"`
	ReportCardSubjectDescription string  `gorm:"type:text;not null;default:'';column:report_card_subject_description" json:"report_card_subject_description"`

	ReportCardSubjectCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:report_card_subject_created_at" json:"report_card_subject_created_at"`
}

func (ReportCardSubjectModel) TableName() string { return "report_card_subjects" }
