// file: internals/features/school/report_cards/service/generator.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/datatypes"

	"raportku_backend/internals/configs"
	"raportku_backend/internals/features/school/report_cards/calc"
	reportModel "raportku_backend/internals/features/school/report_cards/model"
	"raportku_backend/internals/helpers/apperrors"
	"raportku_backend/internals/services/notify"
)

// Generator menghitung dan menyimpan rapor untuk satu cohort (rombel + term).
type Generator struct {
	Repo     Repository
	Policy   configs.ReportPolicy
	Notifier notify.Dispatcher
	Now      func() time.Time
}

func NewGenerator(repo Repository, policy configs.ReportPolicy, notifier notify.Dispatcher) *Generator {
	return &Generator{Repo: repo, Policy: policy, Notifier: notifier, Now: time.Now}
}

type GenerateResult struct {
	ClassGroupID  uuid.UUID                     `json:"class_group_id"`
	TermID        uuid.UUID                     `json:"term_id"`
	TotalStudents int                           `json:"total_students"`
	Cards         []reportModel.ReportCardModel `json:"cards"`
}

type policySnapshot struct {
	Policy     configs.ReportPolicy `json:"policy"`
	CohortSize int                  `json:"cohort_size"`
}

/* =========================================================
   GENERATE
========================================================= */

// GenerateForClassGroup: termID nil → term aktif. Bila ada satu saja rapor terkunci
// di cohort, seluruh batch ditolak dan tidak ada yang ditulis.
func (g *Generator) GenerateForClassGroup(ctx context.Context, classGroupID uuid.UUID, termID *uuid.UUID) (*GenerateResult, error) {
	var (
		res    *GenerateResult
		cohort *Cohort
	)
	err := g.Repo.WithTx(ctx, func(r Repository) error {
		tid, err := g.resolveTerm(ctx, r, termID)
		if err != nil {
			return err
		}
		cohort, err = g.loadCohort(ctx, r, classGroupID, tid)
		if err != nil {
			return err
		}

		var locked []uuid.UUID
		for _, m := range cohort.Members {
			if ex, ok := cohort.Existing[m.EnrollmentID]; ok && ex.IsLocked() {
				locked = append(locked, m.EnrollmentID)
			}
		}
		if len(locked) > 0 {
			return &apperrors.LockedStateError{EnrollmentIDs: locked}
		}

		cards, err := g.build(cohort)
		if err != nil {
			return err
		}
		for i := range cards {
			if err := r.SaveCard(ctx, &cards[i]); err != nil {
				return errors.Wrap(err, "simpan rapor")
			}
		}
		res = &GenerateResult{
			ClassGroupID:  classGroupID,
			TermID:        tid,
			TotalStudents: len(cohort.Members),
			Cards:         cards,
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.WrapTx("generate rapor rombel", err)
	}

	log.Printf("[INFO] rapor digenerate: class_group=%s term=%s siswa=%d", classGroupID, res.TermID, res.TotalStudents)
	g.notify(cohort, res.Cards...)
	return res, nil
}

// GenerateForEnrollment menghitung ulang seluruh cohort (peringkat butuh semua siswa)
// tetapi hanya menulis rapor milik enrollment tersebut.
func (g *Generator) GenerateForEnrollment(ctx context.Context, enrollmentID uuid.UUID, termID *uuid.UUID) (*reportModel.ReportCardModel, error) {
	var (
		card   *reportModel.ReportCardModel
		cohort *Cohort
	)
	err := g.Repo.WithTx(ctx, func(r Repository) error {
		ref, err := r.FindEnrollment(ctx, enrollmentID)
		if err != nil {
			return err
		}
		if termID != nil && *termID != ref.TermID {
			return apperrors.NewValidationError(errors.New("term tidak sesuai dengan enrollment"),
				apperrors.FieldError{Field: "term_id", Error: "mismatch"})
		}
		cohort, err = g.loadCohort(ctx, r, ref.ClassGroupID, ref.TermID)
		if err != nil {
			return err
		}
		if ex, ok := cohort.Existing[enrollmentID]; ok && ex.IsLocked() {
			return &apperrors.LockedStateError{EnrollmentIDs: []uuid.UUID{enrollmentID}}
		}

		cards, err := g.build(cohort)
		if err != nil {
			return err
		}
		for i := range cards {
			if cards[i].ReportCardClassEnrollmentID != enrollmentID {
				continue
			}
			if err := r.SaveCard(ctx, &cards[i]); err != nil {
				return errors.Wrap(err, "simpan rapor")
			}
			card = &cards[i]
			return nil
		}
		return apperrors.ErrEmptyCohort
	})
	if err != nil {
		return nil, apperrors.WrapTx("generate rapor siswa", err)
	}

	g.notify(cohort, *card)
	return card, nil
}

func (g *Generator) resolveTerm(ctx context.Context, r Repository, termID *uuid.UUID) (uuid.UUID, error) {
	if termID != nil && *termID != uuid.Nil {
		return *termID, nil
	}
	return r.ActiveTermID(ctx)
}

func (g *Generator) loadCohort(ctx context.Context, r Repository, classGroupID, termID uuid.UUID) (*Cohort, error) {
	co, err := r.LoadCohort(ctx, classGroupID, termID)
	if err != nil {
		return nil, err
	}
	if len(co.Members) == 0 {
		return nil, apperrors.ErrEmptyCohort
	}
	return co, nil
}

// build: hitung nilai, absensi, dan peringkat seluruh cohort.
func (g *Generator) build(co *Cohort) ([]reportModel.ReportCardModel, error) {
	now := g.Now()
	snap, err := sonic.Marshal(policySnapshot{Policy: g.Policy, CohortSize: len(co.Members)})
	if err != nil {
		return nil, errors.Wrap(err, "snapshot policy")
	}

	cards := make([]reportModel.ReportCardModel, 0, len(co.Members))
	entries := make([]calc.RankEntry, 0, len(co.Members))

	for _, m := range co.Members {
		outcomes := make([]calc.SubjectOutcome, 0, len(co.Subjects))
		for _, s := range co.Subjects {
			kkm, ok := co.KKM[s.ID]
			if !ok {
				kkm = g.Policy.DefaultKKM
			}
			outcomes = append(outcomes, calc.EvaluateSubject(s, co.Scores[m.StudentID][s.ID], kkm, g.Policy))
		}
		sum := calc.SummarizeCard(outcomes)
		att := calc.TallyAttendance(co.Attendance[m.StudentID])

		card := reportModel.ReportCardModel{
			ReportCardID:                uuid.New(),
			ReportCardClassEnrollmentID: m.EnrollmentID,
			ReportCardTermID:            co.TermID,
			ReportCardClassGroupID:      co.ClassGroupID,
			ReportCardStudentID:         m.StudentID,
			ReportCardTotalScore:        sum.Total,
			ReportCardAverageScore:      sum.Average,
			ReportCardTotalStudents:     len(co.Members),
			ReportCardSickDays:          att.SickDays,
			ReportCardPermitDays:        att.PermitDays,
			ReportCardAbsentDays:        att.AbsentDays,
			ReportCardPromotionStatus:   reportModel.PromotionPending,
			ReportCardFailedSubjects:    pq.StringArray(sum.FailedSubjects),
			ReportCardPolicySnapshot:    datatypes.JSON(snap),
			ReportCardGeneratedAt:       &now,
		}
		if ex, ok := co.Existing[m.EnrollmentID]; ok {
			card.ReportCardID = ex.ReportCardID
			card.ReportCardHomeroomNote = ex.ReportCardHomeroomNote
			card.ReportCardCreatedAt = ex.ReportCardCreatedAt
		}
		if st, ok := co.Promotions[m.StudentID]; ok && st.Valid() {
			card.ReportCardPromotionStatus = st
		}
		card.Subjects = subjectRows(card.ReportCardID, outcomes)

		cards = append(cards, card)
		entries = append(entries, calc.RankEntry{
			EnrollmentID: m.EnrollmentID,
			StudentID:    m.StudentID,
			StudentName:  m.StudentName,
			Average:      sum.Average,
			Total:        sum.Total,
		})
	}

	ranks := make(map[uuid.UUID]int, len(entries))
	order := make(map[uuid.UUID]int, len(entries))
	for i, r := range calc.RankCohort(entries) {
		ranks[r.EnrollmentID] = r.Rank
		order[r.EnrollmentID] = i
	}
	sorted := make([]reportModel.ReportCardModel, len(cards))
	for _, c := range cards {
		c.ReportCardRank = ranks[c.ReportCardClassEnrollmentID]
		sorted[order[c.ReportCardClassEnrollmentID]] = c
	}
	return sorted, nil
}

func subjectRows(cardID uuid.UUID, outcomes []calc.SubjectOutcome) []reportModel.ReportCardSubjectModel {
	rows := make([]reportModel.ReportCardSubjectModel, 0, len(outcomes))
	for _, o := range outcomes {
		rows = append(rows, reportModel.ReportCardSubjectModel{
			ReportCardSubjectID:             uuid.New(),
			ReportCardSubjectReportCardID:   cardID,
			ReportCardSubjectSubjectID:      o.Subject.ID,
			ReportCardSubjectSubjectCode:    o.Subject.Code,
			ReportCardSubjectSubjectName:    o.Subject.Name,
			ReportCardSubjectKnowledgeScore: o.Knowledge,
			ReportCardSubjectKnowledgeGrade: o.KnowledgeGrade,
			ReportCardSubjectSkillScore:     o.Skill,
			ReportCardSubjectSkillGrade:     o.SkillGrade,
			ReportCardSubjectKKM:            o.KKM,
			ReportCardSubjectIsPassed:       o.Passed,
			ReportCardSubjectDescription:    o.Description,
		})
	}
	return rows
}

// notify dipanggil setelah commit; gagal kirim tidak memengaruhi hasil generate.
func (g *Generator) notify(co *Cohort, cards ...reportModel.ReportCardModel) {
	if g.Notifier == nil || co == nil {
		return
	}
	members := make(map[uuid.UUID]Member, len(co.Members))
	for _, m := range co.Members {
		members[m.EnrollmentID] = m
	}
	notices := make([]notify.ReportCardNotice, 0, len(cards))
	for _, c := range cards {
		m := members[c.ReportCardClassEnrollmentID]
		notices = append(notices, notify.ReportCardNotice{
			ReportCardID:  c.ReportCardID,
			StudentName:   m.StudentName,
			ParentName:    m.ParentName,
			ParentEmail:   m.ParentEmail,
			ClassGroup:    co.ClassGroupName,
			TermLabel:     co.TermLabel,
			AverageScore:  c.ReportCardAverageScore,
			Rank:          c.ReportCardRank,
			TotalStudents: c.ReportCardTotalStudents,
		})
	}
	g.Notifier.ReportCardsReady(notices...)
}

/* =========================================================
   LOCK / UNLOCK / CATATAN WALI KELAS
========================================================= */

// Lock: idempotent, rapor yang sudah terkunci dikembalikan apa adanya.
func (g *Generator) Lock(ctx context.Context, id uuid.UUID) (*reportModel.ReportCardModel, error) {
	var out *reportModel.ReportCardModel
	err := g.Repo.WithTx(ctx, func(r Repository) error {
		card, err := r.FindCard(ctx, id)
		if err != nil {
			return err
		}
		if !card.IsLocked() {
			now := g.Now()
			if err := r.SetLockedAt(ctx, id, &now); err != nil {
				return err
			}
			card.ReportCardLockedAt = &now
		}
		out = card
		return nil
	})
	if err != nil {
		return nil, apperrors.WrapTx("kunci rapor", err)
	}
	return out, nil
}

func (g *Generator) Unlock(ctx context.Context, id uuid.UUID) (*reportModel.ReportCardModel, error) {
	var out *reportModel.ReportCardModel
	err := g.Repo.WithTx(ctx, func(r Repository) error {
		card, err := r.FindCard(ctx, id)
		if err != nil {
			return err
		}
		if card.IsLocked() {
			if err := r.SetLockedAt(ctx, id, nil); err != nil {
				return err
			}
			card.ReportCardLockedAt = nil
		}
		out = card
		return nil
	})
	if err != nil {
		return nil, apperrors.WrapTx("buka kunci rapor", err)
	}
	return out, nil
}

// UpdateHomeroomNote: jalur edit normal, ditolak bila rapor terkunci.
func (g *Generator) UpdateHomeroomNote(ctx context.Context, id uuid.UUID, note *string) (*reportModel.ReportCardModel, error) {
	var out *reportModel.ReportCardModel
	err := g.Repo.WithTx(ctx, func(r Repository) error {
		card, err := r.FindCard(ctx, id)
		if err != nil {
			return err
		}
		if card.IsLocked() {
			return &apperrors.LockedStateError{EnrollmentIDs: []uuid.UUID{card.ReportCardClassEnrollmentID}}
		}
		if err := r.SetHomeroomNote(ctx, id, note); err != nil {
			return err
		}
		card.ReportCardHomeroomNote = note
		out = card
		return nil
	})
	if err != nil {
		return nil, apperrors.WrapTx("ubah catatan wali kelas", err)
	}
	return out, nil
}

/* =========================================================
   READ
========================================================= */

func (g *Generator) Get(ctx context.Context, id uuid.UUID) (*reportModel.ReportCardModel, error) {
	return g.Repo.FindCard(ctx, id)
}

// ListByClassGroup: urut peringkat; termID nil → term aktif.
func (g *Generator) ListByClassGroup(ctx context.Context, classGroupID uuid.UUID, termID *uuid.UUID) ([]reportModel.ReportCardModel, error) {
	tid, err := g.resolveTerm(ctx, g.Repo, termID)
	if err != nil {
		return nil, err
	}
	return g.Repo.ListCards(ctx, classGroupID, tid)
}
