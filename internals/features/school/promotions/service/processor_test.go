package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raportku_backend/internals/databases/inmem"
	"raportku_backend/internals/features/school/promotions/service"
	reportModel "raportku_backend/internals/features/school/report_cards/model"
	"raportku_backend/internals/helpers/apperrors"
	"raportku_backend/internals/testutil"
)

func setup(t *testing.T) (*inmem.Store, testutil.School, *service.Processor) {
	t.Helper()
	st := inmem.New()
	s := testutil.NewSchool(t, st)
	return st, s, service.NewProcessor(st.PromotionRepo())
}

func idPtr(id uuid.UUID) *uuid.UUID { return &id }

func TestSubmit_IdempotentPerStudentTerm(t *testing.T) {
	st, s, p := setup(t)
	ctx := context.Background()
	next := idPtr(s.NextClassGroup.ClassGroupID)

	in := service.SubmitInput{
		ClassGroupID: s.ClassGroup.ClassGroupID,
		Decisions: []service.Decision{
			{StudentID: s.Students[0].StudentID, Status: reportModel.PromotionPromoted, ToClassGroupID: next},
			{StudentID: s.Students[1].StudentID, Status: reportModel.PromotionGraduated},
		},
	}
	rows, err := p.Submit(ctx, in)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, s.NextTerm.AcademicTermID, *rows[0].ClassPromotionToTermID)
	assert.Nil(t, rows[1].ClassPromotionToClassGroupID)

	// kirim ulang dengan keputusan berbeda → tetap satu baris per siswa
	note := "tinggal kelas atas permintaan wali"
	in.Decisions[0] = service.Decision{StudentID: s.Students[0].StudentID, Status: reportModel.PromotionRetained, ToClassGroupID: next, Note: &note}
	_, err = p.Submit(ctx, in)
	require.NoError(t, err)

	all := st.Promotions()
	require.Len(t, all, 2)
	for _, row := range all {
		if row.ClassPromotionStudentID == s.Students[0].StudentID {
			assert.Equal(t, reportModel.PromotionRetained, row.ClassPromotionStatus)
			require.NotNil(t, row.ClassPromotionNote)
			assert.Equal(t, note, *row.ClassPromotionNote)
			assert.Equal(t, rows[0].ClassPromotionID, row.ClassPromotionID)
		}
	}
}

func TestSubmit_RejectsWholeBatch(t *testing.T) {
	st, s, p := setup(t)

	_, err := p.Submit(context.Background(), service.SubmitInput{
		ClassGroupID: s.ClassGroup.ClassGroupID,
		Decisions: []service.Decision{
			{StudentID: s.Students[0].StudentID, Status: reportModel.PromotionGraduated},
			{StudentID: s.Students[1].StudentID, Status: reportModel.PromotionPromoted},
			{StudentID: s.Students[2].StudentID, Status: reportModel.PromotionPending},
			{StudentID: uuid.New(), Status: reportModel.PromotionTransferred},
			{StudentID: s.Students[0].StudentID, Status: reportModel.PromotionTransferred},
		},
	})
	ve, ok := apperrors.IsValidation(err)
	require.True(t, ok, "err = %v", err)

	fields := ve.FieldMap()
	assert.Contains(t, fields, "decisions[1].to_class_group_id")
	assert.Contains(t, fields, "decisions[2].status")
	assert.Equal(t, []string{"not_enrolled"}, fields["decisions[3].student_id"])
	assert.Equal(t, []string{"duplicate_of_0"}, fields["decisions[4].student_id"])
	assert.NotContains(t, fields, "decisions[0].student_id")

	assert.Empty(t, st.Promotions(), "tidak ada yang tersimpan")
}

func TestSubmit_PromotedNeedsNextTermDestination(t *testing.T) {
	_, s, p := setup(t)

	_, err := p.Submit(context.Background(), service.SubmitInput{
		ClassGroupID: s.ClassGroup.ClassGroupID,
		Decisions: []service.Decision{
			{StudentID: s.Students[0].StudentID, Status: reportModel.PromotionPromoted, ToClassGroupID: idPtr(s.ClassGroup.ClassGroupID)},
			{StudentID: s.Students[1].StudentID, Status: reportModel.PromotionPromoted, ToClassGroupID: idPtr(uuid.New())},
		},
	})
	ve, ok := apperrors.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"same_term"}, ve.FieldMap()["decisions[0].to_class_group_id"])
	assert.Equal(t, []string{"not_found"}, ve.FieldMap()["decisions[1].to_class_group_id"])
}

func TestSubmit_SyncsReportCardStatus(t *testing.T) {
	st, s, p := setup(t)
	card := reportModel.ReportCardModel{
		ReportCardClassEnrollmentID: s.Enrollments[1].ClassEnrollmentID,
		ReportCardTermID:            s.Term.AcademicTermID,
		ReportCardClassGroupID:      s.ClassGroup.ClassGroupID,
		ReportCardStudentID:         s.Students[1].StudentID,
		ReportCardPromotionStatus:   reportModel.PromotionPending,
	}
	st.Put(&card)

	_, err := p.Submit(context.Background(), service.SubmitInput{
		ClassGroupID: s.ClassGroup.ClassGroupID,
		TermID:       idPtr(s.Term.AcademicTermID),
		Decisions: []service.Decision{
			{StudentID: s.Students[1].StudentID, Status: reportModel.PromotionRetained, ToClassGroupID: idPtr(s.NextClassGroup.ClassGroupID)},
		},
	})
	require.NoError(t, err)

	cards := st.ReportCards()
	require.Len(t, cards, 1)
	assert.Equal(t, reportModel.PromotionRetained, cards[0].ReportCardPromotionStatus)
}

func TestSubmit_SkipsLockedReportCard(t *testing.T) {
	st, s, p := setup(t)
	lockedAt := time.Date(2025, 12, 20, 9, 0, 0, 0, time.UTC)
	card := reportModel.ReportCardModel{
		ReportCardClassEnrollmentID: s.Enrollments[1].ClassEnrollmentID,
		ReportCardTermID:            s.Term.AcademicTermID,
		ReportCardClassGroupID:      s.ClassGroup.ClassGroupID,
		ReportCardStudentID:         s.Students[1].StudentID,
		ReportCardPromotionStatus:   reportModel.PromotionPending,
		ReportCardLockedAt:          &lockedAt,
	}
	st.Put(&card)

	rows, err := p.Submit(context.Background(), service.SubmitInput{
		ClassGroupID: s.ClassGroup.ClassGroupID,
		TermID:       idPtr(s.Term.AcademicTermID),
		Decisions: []service.Decision{
			{StudentID: s.Students[1].StudentID, Status: reportModel.PromotionGraduated},
		},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// keputusan tetap tersimpan, rapor terkunci tidak disentuh
	require.Len(t, st.Promotions(), 1)
	cards := st.ReportCards()
	require.Len(t, cards, 1)
	assert.True(t, cards[0].IsLocked())
	assert.Equal(t, reportModel.PromotionPending, cards[0].ReportCardPromotionStatus)
}

func TestSubmit_TermMismatchAndEmpty(t *testing.T) {
	_, s, p := setup(t)
	ctx := context.Background()

	_, err := p.Submit(ctx, service.SubmitInput{
		ClassGroupID: s.ClassGroup.ClassGroupID,
		TermID:       idPtr(s.NextTerm.AcademicTermID),
		Decisions:    []service.Decision{{StudentID: s.Students[0].StudentID, Status: reportModel.PromotionGraduated}},
	})
	ve, ok := apperrors.IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.FieldMap(), "term_id")

	_, err = p.Submit(ctx, service.SubmitInput{ClassGroupID: s.ClassGroup.ClassGroupID})
	ve, ok = apperrors.IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.FieldMap(), "decisions")

	_, err = p.Submit(ctx, service.SubmitInput{ClassGroupID: uuid.New()})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestSubmit_StorageFailureRollsBack(t *testing.T) {
	st, s, p := setup(t)
	st.FailWrites(errors.New("koneksi putus"))

	_, err := p.Submit(context.Background(), service.SubmitInput{
		ClassGroupID: s.ClassGroup.ClassGroupID,
		Decisions:    []service.Decision{{StudentID: s.Students[0].StudentID, Status: reportModel.PromotionGraduated}},
	})
	var te *apperrors.TransactionError
	require.True(t, errors.As(err, &te))
	st.FailWrites(nil)
	assert.Empty(t, st.Promotions())
}

func TestListByClassGroup(t *testing.T) {
	_, s, p := setup(t)
	ctx := context.Background()
	_, err := p.Submit(ctx, service.SubmitInput{
		ClassGroupID: s.ClassGroup.ClassGroupID,
		Decisions: []service.Decision{
			{StudentID: s.Students[2].StudentID, Status: reportModel.PromotionGraduated},
			{StudentID: s.Students[0].StudentID, Status: reportModel.PromotionTransferred},
		},
	})
	require.NoError(t, err)

	rows, err := p.ListByClassGroup(ctx, s.ClassGroup.ClassGroupID, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, s.Students[0].StudentID, rows[0].ClassPromotionStudentID)
}
