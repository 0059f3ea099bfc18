//go:build integration

// file: internals/testutil/postgres.go
package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "raportku_backend/internals/databases"
)

// OpenPostgres membuka RAPORT_TEST_DSN, migrasi skema, lalu mengembalikan
// satu transaksi yang di-rollback saat test selesai.
// Jalankan dengan: go test -tags integration ./...
func OpenPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("RAPORT_TEST_DSN")
	if dsn == "" {
		t.Skip("RAPORT_TEST_DSN kosong, lewati test postgres")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	tx := db.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() { tx.Rollback() })
	return tx
}
