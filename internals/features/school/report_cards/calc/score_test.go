package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raportku_backend/internals/configs"
)

func ptr(v float64) *float64 { return &v }

func TestAggregateSubject_TwoTugas(t *testing.T) {
	policy := configs.DefaultReportPolicy()
	entries := []ScoreEntry{
		{Category: "tugas", Weight: 50, MaxScore: 100, Score: 80},
		{Category: "tugas", Weight: 50, MaxScore: 100, Score: 90},
	}

	got := EvaluateSubject(SubjectRef{Code: "MTK"}, entries, 70, policy)

	require.NotNil(t, got.Knowledge)
	assert.Equal(t, 85.0, *got.Knowledge)
	require.NotNil(t, got.KnowledgeGrade)
	assert.Equal(t, "B", *got.KnowledgeGrade)
	assert.Nil(t, got.Skill)
	assert.Nil(t, got.SkillGrade)
	assert.True(t, got.Passed)
	assert.Contains(t, got.Description, "Tuntas")
}

func TestAggregateSubject_Buckets(t *testing.T) {
	policy := configs.DefaultReportPolicy()

	t.Run("empty bucket is nil", func(t *testing.T) {
		got := AggregateSubject(nil, policy)
		assert.Nil(t, got.Knowledge)
		assert.Nil(t, got.Skill)
	})

	t.Run("praktik goes to skill", func(t *testing.T) {
		got := AggregateSubject([]ScoreEntry{
			{Category: "uts", Weight: 30, MaxScore: 100, Score: 60},
			{Category: "praktik", Weight: 40, MaxScore: 50, Score: 45},
		}, policy)
		require.NotNil(t, got.Knowledge)
		require.NotNil(t, got.Skill)
		assert.Equal(t, 60.0, *got.Knowledge)
		assert.Equal(t, 90.0, *got.Skill)
	})

	t.Run("normalized by present weight", func(t *testing.T) {
		got := AggregateSubject([]ScoreEntry{
			{Category: "quiz", Weight: 20, MaxScore: 10, Score: 7},
			{Category: "uas", Weight: 60, MaxScore: 100, Score: 90},
		}, policy)
		require.NotNil(t, got.Knowledge)
		// (0.7*20 + 0.9*60) / 80 * 100
		assert.Equal(t, 85.0, *got.Knowledge)
	})

	t.Run("idempotent", func(t *testing.T) {
		in := []ScoreEntry{
			{Category: "tugas", Weight: 33, MaxScore: 100, Score: 71},
			{Category: "quiz", Weight: 17, MaxScore: 20, Score: 13},
		}
		a := AggregateSubject(in, policy)
		b := AggregateSubject(in, policy)
		assert.Equal(t, *a.Knowledge, *b.Knowledge)
	})
}

func TestContribution_Bounds(t *testing.T) {
	cases := []struct {
		score, max, weight float64
	}{
		{0, 100, 40},
		{100, 100, 40},
		{55.5, 60, 12.5},
		{120, 100, 40}, // di atas max tetap dibatasi
		{-5, 100, 40},
	}
	for _, tc := range cases {
		c := Contribution(tc.score, tc.max, tc.weight)
		assert.GreaterOrEqual(t, c, 0.0)
		assert.LessOrEqual(t, c, tc.weight)
	}
	assert.Equal(t, 0.0, Contribution(50, 0, 40))
}

func TestGrade_Scales(t *testing.T) {
	cases := []struct {
		score     float64
		predicate string
		letter4   string
	}{
		{95, "A", "A"},
		{90, "A", "A"},
		{89.99, "B", "B"},
		{80, "B", "B"},
		{70, "C", "C"},
		{65, "D", "D"},
		{59.9, "E", "D"},
		{0, "E", "D"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.predicate, Grade(tc.score, configs.ScalePredicate), "predicate %.2f", tc.score)
		assert.Equal(t, tc.letter4, Grade(tc.score, configs.ScaleLetter4), "letter4 %.2f", tc.score)
	}
}

func TestPasses(t *testing.T) {
	assert.True(t, Passes(ptr(70), 70, true))
	assert.False(t, Passes(ptr(69.99), 70, true))
	assert.True(t, Passes(nil, 70, true))
	assert.False(t, Passes(nil, 70, false))
}

func TestEvaluateSubject_FailsOnSkill(t *testing.T) {
	got := EvaluateSubject(SubjectRef{Code: "PJOK"}, []ScoreEntry{
		{Category: "tugas", Weight: 50, MaxScore: 100, Score: 88},
		{Category: "praktik", Weight: 50, MaxScore: 100, Score: 60},
	}, 75, configs.DefaultReportPolicy())

	assert.False(t, got.Passed)
	assert.Contains(t, got.Description, "Belum tuntas")
}

func TestSummarizeCard(t *testing.T) {
	out := SummarizeCard([]SubjectOutcome{
		{Subject: SubjectRef{Code: "MTK"}, Knowledge: ptr(85), Passed: true},
		{Subject: SubjectRef{Code: "IPA"}, Knowledge: ptr(60), Passed: false},
		{Subject: SubjectRef{Code: "SBK"}, Passed: true},
	})

	require.NotNil(t, out.Total)
	require.NotNil(t, out.Average)
	assert.Equal(t, 145.0, *out.Total)
	assert.Equal(t, 72.5, *out.Average)
	assert.Equal(t, []string{"IPA"}, out.FailedSubjects)

	empty := SummarizeCard([]SubjectOutcome{{Subject: SubjectRef{Code: "SBK"}, Passed: true}})
	assert.Nil(t, empty.Average)
	assert.Nil(t, empty.Total)
}
