//go:build integration

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raportku_backend/internals/features/school/promotions/service"
	reportModel "raportku_backend/internals/features/school/report_cards/model"
	"raportku_backend/internals/testutil"
)

func TestGormSyncReportCardStatus_SkipsLocked(t *testing.T) {
	db := testutil.OpenPostgres(t)
	repo := service.NewGormRepository(db)
	ctx := context.Background()
	termID := uuid.New()

	lockedAt := time.Now().UTC()
	open := reportModel.ReportCardModel{
		ReportCardClassEnrollmentID: uuid.New(),
		ReportCardTermID:            termID,
		ReportCardClassGroupID:      uuid.New(),
		ReportCardStudentID:         uuid.New(),
		ReportCardPromotionStatus:   reportModel.PromotionPending,
	}
	locked := open
	locked.ReportCardClassEnrollmentID = uuid.New()
	locked.ReportCardStudentID = uuid.New()
	locked.ReportCardLockedAt = &lockedAt
	require.NoError(t, db.Create(&open).Error)
	require.NoError(t, db.Create(&locked).Error)

	require.NoError(t, repo.SyncReportCardStatus(ctx, termID, open.ReportCardStudentID, reportModel.PromotionGraduated))
	require.NoError(t, repo.SyncReportCardStatus(ctx, termID, locked.ReportCardStudentID, reportModel.PromotionGraduated))

	var got reportModel.ReportCardModel
	require.NoError(t, db.First(&got, "report_card_id = ?", open.ReportCardID).Error)
	assert.Equal(t, reportModel.PromotionGraduated, got.ReportCardPromotionStatus)

	require.NoError(t, db.First(&got, "report_card_id = ?", locked.ReportCardID).Error)
	assert.Equal(t, reportModel.PromotionPending, got.ReportCardPromotionStatus)
	assert.Equal(t, locked.ReportCardUpdatedAt.Unix(), got.ReportCardUpdatedAt.Unix())
}
