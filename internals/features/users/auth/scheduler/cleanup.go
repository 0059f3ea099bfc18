// file: internals/features/users/auth/scheduler/cleanup.go
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// StartBlacklistCleanup menjadwalkan pembersihan token_blacklist. Pemanggil wajib Stop() saat shutdown.
func StartBlacklistCleanup(p Purger, schedule string) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := p.PurgeExpired(ctx)
		if err != nil {
			log.Printf("[CLEANUP ERROR] Gagal hapus token kadaluarsa: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("[CLEANUP] token_blacklist schedule=%q", schedule)
	return c, nil
}
