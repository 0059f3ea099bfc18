package notify

import (
	"log"
	"sync"
)

type consoleDispatcher struct {
	appName string

	mu   sync.Mutex
	sent []Message
	wg   sync.WaitGroup
}

var _ Dispatcher = (*consoleDispatcher)(nil)

// NewConsole: hanya menulis ke log; dipakai di development dan test.
func NewConsole(appName string) *consoleDispatcher {
	return &consoleDispatcher{appName: appName}
}

func (d *consoleDispatcher) ReportCardsReady(notices ...ReportCardNotice) {
	for _, n := range notices {
		msg, ok := buildMessage(d.appName, n)
		if !ok {
			log.Printf("[INFO] rapor %s: wali %s tanpa email, notifikasi dilewati", n.ReportCardID, n.StudentName)
			continue
		}
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.mu.Lock()
			d.sent = append(d.sent, msg)
			d.mu.Unlock()
			log.Printf("[MAIL] to=%s subject=%q", msg.To.Address, msg.Subject)
		}()
	}
}

// Sent menunggu pengiriman yang sedang berjalan lalu mengembalikan salinan pesan.
func (d *consoleDispatcher) Sent() []Message {
	d.wg.Wait()
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Message(nil), d.sent...)
}
