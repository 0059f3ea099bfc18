// Package calc berisi perhitungan rapor tanpa akses database:
// nilai pengetahuan/keterampilan per mapel, predikat, KKM, rekap absensi, dan peringkat.
package calc

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"raportku_backend/internals/configs"
)

// ScoreEntry: satu nilai siswa untuk satu penilaian. Penilaian yang belum dinilai tidak masuk.
type ScoreEntry struct {
	AssessmentID uuid.UUID
	Category     string
	Weight       float64
	MaxScore     float64
	Score        float64
}

// SubjectScore: nil berarti bucket tidak punya penilaian sama sekali.
type SubjectScore struct {
	Knowledge *float64
	Skill     *float64
}

// Contribution = (score/max)*weight, selalu di [0, weight] untuk max > 0.
func Contribution(score, maxScore, weight float64) float64 {
	if maxScore <= 0 || weight <= 0 {
		return 0
	}
	ratio := score / maxScore
	switch {
	case ratio < 0:
		ratio = 0
	case ratio > 1:
		ratio = 1
	}
	return ratio * weight
}

type bucket struct {
	contrib float64
	weight  float64
}

func (b *bucket) add(e ScoreEntry) {
	b.contrib += Contribution(e.Score, e.MaxScore, e.Weight)
	b.weight += e.Weight
}

// dinormalisasi terhadap bobot yang benar-benar ada
func (b bucket) score() *float64 {
	if b.weight <= 0 {
		return nil
	}
	v := Round2(clamp(b.contrib/b.weight*100, 0, 100))
	return &v
}

// AggregateSubject menghitung nilai pengetahuan dan keterampilan satu mapel.
func AggregateSubject(entries []ScoreEntry, policy configs.ReportPolicy) SubjectScore {
	var knowledge, skill bucket
	for _, e := range entries {
		if e.MaxScore <= 0 || e.Weight <= 0 {
			continue
		}
		if policy.IsSkill(e.Category) {
			skill.add(e)
		} else {
			knowledge.add(e)
		}
	}
	return SubjectScore{Knowledge: knowledge.score(), Skill: skill.score()}
}

/* =========================
   Predikat & KKM
========================= */

// Grade memetakan nilai ke huruf sesuai skala yang dipilih deployment.
func Grade(score float64, scale configs.GradingScale) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	}
	if scale == configs.ScaleLetter4 {
		return "D"
	}
	if score >= 60 {
		return "D"
	}
	return "E"
}

func GradePtr(score *float64, scale configs.GradingScale) *string {
	if score == nil {
		return nil
	}
	g := Grade(*score, scale)
	return &g
}

// Passes: nilai >= KKM. Nilai nil mengikuti policy (default: dianggap tuntas).
func Passes(score *float64, kkm float64, nullPasses bool) bool {
	if score == nil {
		return nullPasses
	}
	return *score >= kkm
}

/* =========================
   Hasil per mapel
========================= */

type SubjectRef struct {
	ID   uuid.UUID
	Code string
	Name string
}

type SubjectOutcome struct {
	Subject        SubjectRef
	Knowledge      *float64
	KnowledgeGrade *string
	Skill          *float64
	SkillGrade     *string
	KKM            float64
	Passed         bool
	Description    string
}

// EvaluateSubject: tuntas bila pengetahuan dan keterampilan sama-sama memenuhi KKM.
func EvaluateSubject(subject SubjectRef, entries []ScoreEntry, kkm float64, policy configs.ReportPolicy) SubjectOutcome {
	s := AggregateSubject(entries, policy)
	out := SubjectOutcome{
		Subject:        subject,
		Knowledge:      s.Knowledge,
		KnowledgeGrade: GradePtr(s.Knowledge, policy.Scale),
		Skill:          s.Skill,
		SkillGrade:     GradePtr(s.Skill, policy.Scale),
		KKM:            kkm,
		Passed: Passes(s.Knowledge, kkm, policy.NullScorePasses) &&
			Passes(s.Skill, kkm, policy.NullScorePasses),
	}
	out.Description = describe(out)
	return out
}

func describe(o SubjectOutcome) string {
	if o.Knowledge == nil && o.Skill == nil {
		return "Belum ada nilai"
	}
	status := "Tuntas"
	if !o.Passed {
		status = "Belum tuntas"
	}
	grade := "-"
	if o.KnowledgeGrade != nil {
		grade = *o.KnowledgeGrade
	} else if o.SkillGrade != nil {
		grade = *o.SkillGrade
	}
	return fmt.Sprintf("%s (predikat %s, KKM %.2f)", status, grade, o.KKM)
}

/* =========================
   Ringkasan rapor
========================= */

type CardScore struct {
	Total          *float64
	Average        *float64
	FailedSubjects []string
}

// SummarizeCard: rata-rata & total dari nilai pengetahuan yang ada (mapel nil dilewati).
func SummarizeCard(outcomes []SubjectOutcome) CardScore {
	var (
		sum float64
		n   int
		out CardScore
	)
	out.FailedSubjects = []string{}
	for _, o := range outcomes {
		if !o.Passed {
			out.FailedSubjects = append(out.FailedSubjects, o.Subject.Code)
		}
		if o.Knowledge == nil {
			continue
		}
		sum += *o.Knowledge
		n++
	}
	if n == 0 {
		return out
	}
	total := Round2(sum)
	avg := Round2(sum / float64(n))
	out.Total = &total
	out.Average = &avg
	return out
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
