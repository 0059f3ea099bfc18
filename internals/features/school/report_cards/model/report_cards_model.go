// file: internals/features/school/report_cards/model/report_cards_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

/* ======================================================
   ENUM: promotion_status (ikut keputusan class_promotions)
====================================================== */

type PromotionStatus string

const (
	PromotionPending     PromotionStatus = "pending"
	PromotionPromoted    PromotionStatus = "promoted"
	PromotionRetained    PromotionStatus = "retained"
	PromotionGraduated   PromotionStatus = "graduated"
	PromotionTransferred PromotionStatus = "transferred"
)

func (s PromotionStatus) Valid() bool {
	switch s {
	case PromotionPending, PromotionPromoted, PromotionRetained, PromotionGraduated, PromotionTransferred:
		return true
	}
	return false
}

// NeedsDestination: naik kelas / tinggal kelas wajib punya rombel tujuan.
func (s PromotionStatus) NeedsDestination() bool {
	return s == PromotionPromoted || s == PromotionRetained
}

/* ======================================================
   Model: report_cards
====================================================== */

type ReportCardModel struct {
	ReportCardID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:report_card_id" json:"report_card_id"`
	ReportCardClassEnrollmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_report_cards_enrollment_term,priority:1;column:report_card_class_enrollment_id" json:"report_card_class_enrollment_id"`
	ReportCardTermID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_report_cards_enrollment_term,priority:2;index;column:report_card_term_id" json:"report_card_term_id"`

	// denormalized (cohort & pemilik)
	ReportCardClassGroupID uuid.UUID `gorm:"type:uuid;not null;index;column:report_card_class_group_id" json:"report_card_class_group_id"`
	ReportCardStudentID    uuid.UUID `gorm:"type:uuid;not null;index;column:report_card_student_id" json:"report_card_student_id"`

	// Nilai (nil = belum ada nilai pengetahuan sama sekali)
	ReportCardTotalScore   *float64 `gorm:"type:numeric(8,2);column:report_card_total_score" json:"report_card_total_score"`
	ReportCardAverageScore *float64 `gorm:"type:numeric(5,2);column:report_card_average_score" json:"report_card_average_score"`

	// Peringkat relatif terhadap total_students saat generate
	ReportCardRank          int `gorm:"type:int;not null;default:0;column:report_card_rank" json:"report_card_rank"`
	ReportCardTotalStudents int `gorm:"type:int;not null;default:0;column:report_card_total_students" json:"report_card_total_students"`

	// Rekap kehadiran (hitungan per sesi)
	ReportCardSickDays   int `gorm:"type:int;not null;default:0;column:report_card_sick_days" json:"report_card_sick_days"`
	ReportCardPermitDays int `gorm:"type:int;not null;default:0;column:report_card_permit_days" json:"report_card_permit_days"`
	ReportCardAbsentDays int `gorm:"type:int;not null;default:0;column:report_card_absent_days" json:"report_card_absent_days"`

	ReportCardPromotionStatus PromotionStatus `gorm:"type:varchar(16);not null;default:'pending';column:report_card_promotion_status" json:"report_card_promotion_status"`
	ReportCardHomeroomNote    *string         `gorm:"type:text;column:report_card_homeroom_note" json:"report_card_homeroom_note,omitempty"`

	// Kode mapel yang belum tuntas KKM
	ReportCardFailedSubjects pq.StringArray `gorm:"type:text[];column:report_card_failed_subjects" json:"report_card_failed_subjects"`
	// Aturan penilaian yang dipakai saat generate
	ReportCardPolicySnapshot datatypes.JSON `gorm:"type:jsonb;column:report_card_policy_snapshot" json:"report_card_policy_snapshot,omitempty"`

	ReportCardGeneratedAt *time.Time `gorm:"type:timestamptz;column:report_card_generated_at" json:"report_card_generated_at,omitempty"`
	ReportCardLockedAt    *time.Time `gorm:"type:timestamptz;column:report_card_locked_at" json:"report_card_locked_at,omitempty"`

	ReportCardCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:report_card_created_at" json:"report_card_created_at"`
	ReportCardUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:report_card_updated_at" json:"report_card_updated_at"`

	Subjects []ReportCardSubjectModel `gorm:"foreignKey:ReportCardSubjectReportCardID;references:ReportCardID" json:"subjects,omitempty"`
}

func (ReportCardModel) TableName() string { return "report_cards" }

func (m ReportCardModel) IsLocked() bool { return m.ReportCardLockedAt != nil }

func (m ReportCardModel) TotalAbsence() int {
	return m.ReportCardSickDays + m.ReportCardPermitDays + m.ReportCardAbsentDays
}
