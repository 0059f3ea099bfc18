package calc

import (
	"sort"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type RankEntry struct {
	EnrollmentID uuid.UUID
	StudentID    uuid.UUID
	StudentName  string
	Average      *float64
	Total        *float64
}

type Ranked struct {
	RankEntry
	Rank int
}

// RankCohort memberi peringkat kompetisi standar (1,2,2,4) pada (rata-rata desc, total desc).
// Siswa tanpa rata-rata selalu di akhir. Urutan tampil dalam satu peringkat:
// nama siswa (collation Indonesia) lalu student id.
func RankCohort(entries []RankEntry) []Ranked {
	out := make([]Ranked, len(entries))
	for i, e := range entries {
		out[i] = Ranked{RankEntry: e}
	}
	col := collate.New(language.Indonesian, collate.IgnoreCase, collate.IgnoreDiacritics)

	sort.SliceStable(out, func(i, j int) bool {
		if c := compareScore(out[i].RankEntry, out[j].RankEntry); c != 0 {
			return c < 0
		}
		if c := col.CompareString(out[i].StudentName, out[j].StudentName); c != 0 {
			return c < 0
		}
		return out[i].StudentID.String() < out[j].StudentID.String()
	})

	for i := range out {
		if i > 0 && compareScore(out[i-1].RankEntry, out[i].RankEntry) == 0 {
			out[i].Rank = out[i-1].Rank
			continue
		}
		out[i].Rank = i + 1
	}
	return out
}

// -1 bila a lebih tinggi, 1 bila b lebih tinggi
func compareScore(a, b RankEntry) int {
	if c := compareDesc(a.Average, b.Average); c != 0 {
		return c
	}
	return compareDesc(a.Total, b.Total)
}

func compareDesc(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a > *b:
		return -1
	case *a < *b:
		return 1
	}
	return 0
}
