// Package errlog meneruskan error 5xx dan panic ke Rollbar bila ROLLBAR_TOKEN diset.
package errlog

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/rollbar/rollbar-go"
)

var enabled atomic.Bool

type Options struct {
	Token       string
	Environment string
	ServerHost  string
	CodeVersion string
}

// Init: tanpa token, reporter tetap hanya menulis ke log.
func Init(o Options) {
	if o.Token == "" {
		log.Println("[INFO] ROLLBAR_TOKEN kosong, error hanya dicatat di log")
		enabled.Store(false)
		rollbar.SetEnabled(false)
		return
	}
	rollbar.SetToken(o.Token)
	rollbar.SetEnvironment(o.Environment)
	rollbar.SetServerHost(o.ServerHost)
	rollbar.SetCodeVersion(o.CodeVersion)
	rollbar.SetEnabled(true)
	enabled.Store(true)
	log.Println("✅ Rollbar aktif untuk env", o.Environment)
}

func Error(msg string, err error, extras map[string]interface{}) {
	log.Printf("[ERROR] %s: %v", msg, err)
	if enabled.Load() {
		rollbar.Error(err, extras, msg)
	}
}

func Critical(msg string, recovered interface{}, extras map[string]interface{}) {
	log.Printf("[PANIC] %s: %v", msg, recovered)
	if enabled.Load() {
		rollbar.Critical(fmt.Errorf("%v", recovered), extras, msg)
	}
}

// Close: flush antrean sebelum proses berhenti.
func Close() {
	if enabled.Load() {
		rollbar.Close()
	}
}
