// Package notify mengirim pemberitahuan "rapor tersedia" ke wali siswa.
// Pengiriman bersifat fire-and-forget: kegagalan hanya dicatat, tidak memengaruhi generate.
package notify

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

// ReportCardNotice: isi minimum satu pemberitahuan rapor.
type ReportCardNotice struct {
	ReportCardID  uuid.UUID
	StudentName   string
	ParentName    string
	ParentEmail   string
	ClassGroup    string
	TermLabel     string
	AverageScore  *float64
	Rank          int
	TotalStudents int
}

type Message struct {
	To      mail.Address
	Subject string
	Text    string
}

// Dispatcher is any service that can deliver report card notices.
type Dispatcher interface {
	// ReportCardsReady mengirim secara asynchronous
	ReportCardsReady(notices ...ReportCardNotice)
}

// New: sendgrid bila api key diset, console bila tidak.
func New(sendgridKey, from, appName string) Dispatcher {
	if strings.TrimSpace(sendgridKey) == "" {
		return NewConsole(appName)
	}
	return NewSendgrid(sendgridKey, from, appName)
}

func buildMessage(appName string, n ReportCardNotice) (Message, bool) {
	if strings.TrimSpace(n.ParentEmail) == "" {
		return Message{}, false
	}
	avg := "-"
	if n.AverageScore != nil {
		avg = fmt.Sprintf("%.2f", *n.AverageScore)
	}
	name := n.ParentName
	if name == "" {
		name = "Bapak/Ibu Wali"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Yth. %s,\n\n", name)
	fmt.Fprintf(&b, "Rapor %s (%s) untuk %s sudah tersedia.\n", n.StudentName, n.ClassGroup, n.TermLabel)
	fmt.Fprintf(&b, "Rata-rata: %s\n", avg)
	if n.Rank > 0 {
		fmt.Fprintf(&b, "Peringkat: %d dari %d siswa\n", n.Rank, n.TotalStudents)
	}
	b.WriteString("\nSilakan login untuk melihat rapor lengkap.\n")
	return Message{
		To:      mail.Address{Name: n.ParentName, Address: n.ParentEmail},
		Subject: fmt.Sprintf("[%s] Rapor %s - %s", appName, n.StudentName, n.TermLabel),
		Text:    b.String(),
	}, true
}
