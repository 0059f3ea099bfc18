package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleDispatcher_SkipsMissingEmail(t *testing.T) {
	avg := 85.5
	d := NewConsole("Raportku")
	d.ReportCardsReady(
		ReportCardNotice{StudentName: "Ani", ParentEmail: "wali.ani@example.com", ClassGroup: "VII-A",
			TermLabel: "2025/2026 Ganjil", AverageScore: &avg, Rank: 1, TotalStudents: 30},
		ReportCardNotice{StudentName: "Budi"},
	)

	sent := d.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "wali.ani@example.com", sent[0].To.Address)
	assert.Contains(t, sent[0].Subject, "Rapor Ani")
	assert.Contains(t, sent[0].Text, "Rata-rata: 85.50")
	assert.Contains(t, sent[0].Text, "Peringkat: 1 dari 30 siswa")
}

func TestNew_PicksConsoleWithoutKey(t *testing.T) {
	_, ok := New("", "noreply@example.com", "Raportku").(*consoleDispatcher)
	assert.True(t, ok)
	_, ok = New("SG.key", "noreply@example.com", "Raportku").(*sendgridDispatcher)
	assert.True(t, ok)
}
