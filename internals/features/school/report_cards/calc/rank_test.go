package calc

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankCohort_CompetitionRanking(t *testing.T) {
	in := []RankEntry{
		{StudentID: uuid.New(), StudentName: "Citra", Average: ptr(80), Total: ptr(160)},
		{StudentID: uuid.New(), StudentName: "Budi", Average: ptr(90), Total: ptr(180)},
		{StudentID: uuid.New(), StudentName: "Ani", Average: ptr(80), Total: ptr(160)},
		{StudentID: uuid.New(), StudentName: "Dewi", Average: ptr(70), Total: ptr(140)},
		{StudentID: uuid.New(), StudentName: "Eko"},
	}

	got := RankCohort(in)
	require.Len(t, got, 5)

	names := make([]string, len(got))
	ranks := make([]int, len(got))
	for i, r := range got {
		names[i] = r.StudentName
		ranks[i] = r.Rank
	}
	assert.Equal(t, []string{"Budi", "Ani", "Citra", "Dewi", "Eko"}, names)
	assert.Equal(t, []int{1, 2, 2, 4, 5}, ranks)

	for _, r := range got[1:] {
		if r.Average != nil {
			assert.GreaterOrEqual(t, *got[0].Average, *r.Average)
		}
	}
}

func TestRankCohort_TotalBreaksAverageTie(t *testing.T) {
	got := RankCohort([]RankEntry{
		{StudentID: uuid.New(), StudentName: "A", Average: ptr(85), Total: ptr(170)},
		{StudentID: uuid.New(), StudentName: "B", Average: ptr(85), Total: ptr(255)},
	})
	assert.Equal(t, "B", got[0].StudentName)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, 2, got[1].Rank)
}

func TestRankCohort_CollationIgnoresCase(t *testing.T) {
	got := RankCohort([]RankEntry{
		{StudentID: uuid.New(), StudentName: "bayu", Average: ptr(75), Total: ptr(75)},
		{StudentID: uuid.New(), StudentName: "Aulia", Average: ptr(75), Total: ptr(75)},
	})
	assert.Equal(t, "Aulia", got[0].StudentName)
	assert.Equal(t, got[0].Rank, got[1].Rank)
}

func TestRankCohort_AllWithoutScoresShareRank(t *testing.T) {
	got := RankCohort([]RankEntry{
		{StudentID: uuid.New(), StudentName: "X"},
		{StudentID: uuid.New(), StudentName: "Y"},
	})
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, 1, got[1].Rank)
}
