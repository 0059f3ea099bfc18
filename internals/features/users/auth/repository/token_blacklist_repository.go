// file: internals/features/users/auth/repository/token_blacklist_repository.go
package repository

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"raportku_backend/internals/features/users/auth/model"
)

type TokenBlacklistRepository struct {
	DB     *gorm.DB
	Secret string
}

func NewTokenBlacklistRepository(db *gorm.DB, secret string) *TokenBlacklistRepository {
	return &TokenBlacklistRepository{DB: db, Secret: secret}
}

func hashToken(raw, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(raw))
	return hex.EncodeToString(m.Sum(nil))
}

// Revoke: idempotent; logout ulang hanya memperbarui expired_at.
func (r *TokenBlacklistRepository) Revoke(ctx context.Context, raw string, expiresAt time.Time) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	row := model.TokenBlacklistModel{
		TokenBlacklistToken:     hashToken(raw, r.Secret),
		TokenBlacklistExpiredAt: expiresAt.UTC(),
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "token_blacklist_token"}},
		DoUpdates: clause.Assignments(map[string]any{
			"token_blacklist_expired_at": row.TokenBlacklistExpiredAt,
			"token_blacklist_deleted_at": nil,
		}),
	}).Create(&row).Error
}

// IsRevoked: ada baris aktif yang belum lewat expired_at.
func (r *TokenBlacklistRepository) IsRevoked(ctx context.Context, raw string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, nil
	}
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.TokenBlacklistModel{}).
		Where("token_blacklist_token = ? AND token_blacklist_expired_at > ?", hashToken(raw, r.Secret), time.Now().UTC()).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

// PurgeExpired menghapus permanen token yang sudah kedaluwarsa (JWT-nya sendiri sudah tidak valid).
func (r *TokenBlacklistRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res := r.DB.WithContext(ctx).Unscoped().
		Where("token_blacklist_expired_at <= ?", time.Now().UTC()).
		Delete(&model.TokenBlacklistModel{})
	return res.RowsAffected, res.Error
}
