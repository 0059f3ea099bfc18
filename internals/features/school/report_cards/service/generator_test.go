package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raportku_backend/internals/configs"
	"raportku_backend/internals/databases/inmem"
	assessmentModel "raportku_backend/internals/features/school/assessments/model"
	attendanceModel "raportku_backend/internals/features/school/attendance/model"
	classModel "raportku_backend/internals/features/school/classes/class_groups/model"
	promoModel "raportku_backend/internals/features/school/promotions/model"
	reportModel "raportku_backend/internals/features/school/report_cards/model"
	"raportku_backend/internals/features/school/report_cards/service"
	"raportku_backend/internals/helpers/apperrors"
	"raportku_backend/internals/services/notify"
	"raportku_backend/internals/testutil"
)

var fixedNow = time.Date(2025, 12, 20, 9, 0, 0, 0, time.UTC)

type fixture struct {
	st     *inmem.Store
	school testutil.School
	gen    *service.Generator
	mail   *notifyRecorder
	tugas1 assessmentModel.AssessmentModel
}

type notifyRecorder struct {
	notices []notify.ReportCardNotice
}

func (n *notifyRecorder) ReportCardsReady(notices ...notify.ReportCardNotice) {
	n.notices = append(n.notices, notices...)
}

// Ani:  MTK 80/90 → 85, IPA 70 → rata2 77.5
// Budi: MTK 60/70 → 65, IPA 90 → rata2 77.5
// Citra: belum ada nilai
func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := inmem.New()
	s := testutil.NewSchool(t, st)

	t1 := s.AddAssessment(t, st, 0, assessmentModel.AssessmentCategoryTugas, 50, 100)
	t2 := s.AddAssessment(t, st, 0, assessmentModel.AssessmentCategoryTugas, 50, 100)
	s.AddScore(t, st, t1, 0, 80)
	s.AddScore(t, st, t2, 0, 90)
	s.AddScore(t, st, t1, 1, 60)
	s.AddScore(t, st, t2, 1, 70)

	uts := s.AddAssessment(t, st, 1, assessmentModel.AssessmentCategoryUTS, 100, 100)
	s.AddScore(t, st, uts, 0, 70)
	s.AddScore(t, st, uts, 1, 90)

	s.AddAttendance(t, st, 0, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		attendanceModel.AttendancePresent, attendanceModel.AttendanceSick, attendanceModel.AttendanceUnmarked)

	rec := &notifyRecorder{}
	gen := service.NewGenerator(st.ReportCardRepo(), configs.DefaultReportPolicy(), rec)
	gen.Now = func() time.Time { return fixedNow }
	return &fixture{st: st, school: s, gen: gen, mail: rec, tugas1: t1}
}

func (f *fixture) cardOf(t *testing.T, student int) reportModel.ReportCardModel {
	t.Helper()
	for _, c := range f.st.ReportCards() {
		if c.ReportCardStudentID == f.school.Students[student].StudentID {
			return c
		}
	}
	t.Fatalf("rapor siswa %d tidak ada", student)
	return reportModel.ReportCardModel{}
}

func TestGenerateForClassGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.gen.GenerateForClassGroup(ctx, f.school.ClassGroup.ClassGroupID, nil)
	require.NoError(t, err)
	assert.Equal(t, f.school.Term.AcademicTermID, res.TermID)
	assert.Equal(t, 3, res.TotalStudents)
	require.Len(t, res.Cards, 3)

	ani := f.cardOf(t, 0)
	require.NotNil(t, ani.ReportCardAverageScore)
	assert.Equal(t, 77.5, *ani.ReportCardAverageScore)
	assert.Equal(t, 155.0, *ani.ReportCardTotalScore)
	assert.Equal(t, 1, ani.ReportCardRank)
	assert.Equal(t, 3, ani.ReportCardTotalStudents)
	assert.Equal(t, reportModel.PromotionPending, ani.ReportCardPromotionStatus)
	assert.Empty(t, ani.ReportCardFailedSubjects)
	assert.Contains(t, string(ani.ReportCardPolicySnapshot), `"scale":"predicate"`)

	full, err := f.gen.Get(ctx, ani.ReportCardID)
	require.NoError(t, err)
	require.Len(t, full.Subjects, 2)
	ipa, mtk := full.Subjects[0], full.Subjects[1]
	assert.Equal(t, "IPA", ipa.ReportCardSubjectSubjectCode)
	assert.Equal(t, "MTK", mtk.ReportCardSubjectSubjectCode)
	require.NotNil(t, mtk.ReportCardSubjectKnowledgeScore)
	assert.Equal(t, 85.0, *mtk.ReportCardSubjectKnowledgeScore)
	assert.Equal(t, "B", *mtk.ReportCardSubjectKnowledgeGrade)
	assert.Nil(t, mtk.ReportCardSubjectSkillScore)
	assert.Equal(t, 70.0, mtk.ReportCardSubjectKKM)
	assert.True(t, mtk.ReportCardSubjectIsPassed)

	budi := f.cardOf(t, 1)
	assert.Equal(t, 1, budi.ReportCardRank, "rata-rata & total sama → peringkat sama")
	assert.Equal(t, []string{"MTK"}, []string(budi.ReportCardFailedSubjects))
	assert.Equal(t, 1, budi.ReportCardSickDays)
	assert.Zero(t, budi.ReportCardAbsentDays)

	citra := f.cardOf(t, 2)
	assert.Nil(t, citra.ReportCardAverageScore)
	assert.Nil(t, citra.ReportCardTotalScore)
	assert.Equal(t, 3, citra.ReportCardRank)
	assert.Zero(t, citra.TotalAbsence(), "unmarked tidak dihitung")

	// urutan tampil dalam satu peringkat: nama
	assert.Equal(t, f.school.Students[0].StudentID, res.Cards[0].ReportCardStudentID)
	assert.Equal(t, f.school.Students[1].StudentID, res.Cards[1].ReportCardStudentID)

	require.Len(t, f.mail.notices, 3)
	assert.Equal(t, "VII-A", f.mail.notices[0].ClassGroup)
	assert.Equal(t, "2025/2026 Ganjil", f.mail.notices[0].TermLabel)
}

func TestGenerate_OverwritesInPlace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.gen.GenerateForClassGroup(ctx, f.school.ClassGroup.ClassGroupID, nil)
	require.NoError(t, err)
	first := f.cardOf(t, 2)
	assert.Nil(t, first.ReportCardAverageScore)

	// Citra mendapat nilai setelah generate pertama
	quiz := f.school.AddAssessment(t, f.st, 0, assessmentModel.AssessmentCategoryQuiz, 100, 100)
	f.school.AddScore(t, f.st, quiz, 2, 90)

	_, err = f.gen.GenerateForClassGroup(ctx, f.school.ClassGroup.ClassGroupID, &f.school.Term.AcademicTermID)
	require.NoError(t, err)

	cards := f.st.ReportCards()
	assert.Len(t, cards, 3, "satu rapor per (enrollment, term)")
	again := f.cardOf(t, 2)
	assert.Equal(t, first.ReportCardID, again.ReportCardID)
	require.NotNil(t, again.ReportCardAverageScore)
	assert.Equal(t, 90.0, *again.ReportCardAverageScore)
	assert.Equal(t, 1, again.ReportCardRank)

	full, err := f.gen.Get(ctx, again.ReportCardID)
	require.NoError(t, err)
	assert.Len(t, full.Subjects, 2, "subjects diganti, bukan ditambah")
}

func TestGenerate_LockedCardIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.gen.GenerateForClassGroup(ctx, f.school.ClassGroup.ClassGroupID, nil)
	require.NoError(t, err)

	ani := f.cardOf(t, 0)
	locked, err := f.gen.Lock(ctx, ani.ReportCardID)
	require.NoError(t, err)
	require.NotNil(t, locked.ReportCardLockedAt)

	before := f.st.ReportCards()
	f.school.AddScore(t, f.st, f.tugas1, 2, 100)

	_, err = f.gen.GenerateForClassGroup(ctx, f.school.ClassGroup.ClassGroupID, nil)
	le, ok := apperrors.IsLocked(err)
	require.True(t, ok, "err = %v", err)
	assert.Equal(t, []uuid.UUID{f.school.Enrollments[0].ClassEnrollmentID}, le.EnrollmentIDs)
	assert.Equal(t, before, f.st.ReportCards(), "tidak ada rapor yang berubah")

	_, err = f.gen.GenerateForEnrollment(ctx, f.school.Enrollments[0].ClassEnrollmentID, nil)
	_, ok = apperrors.IsLocked(err)
	assert.True(t, ok)

	// enrollment lain di cohort yang sama tetap bisa
	citra, err := f.gen.GenerateForEnrollment(ctx, f.school.Enrollments[2].ClassEnrollmentID, nil)
	require.NoError(t, err)
	require.NotNil(t, citra.ReportCardAverageScore)
	assert.Equal(t, 100.0, *citra.ReportCardAverageScore)
	assert.Equal(t, 1, citra.ReportCardRank)

	_, err = f.gen.UpdateHomeroomNote(ctx, ani.ReportCardID, nil)
	_, ok = apperrors.IsLocked(err)
	assert.True(t, ok)

	// buka kunci → bisa generate lagi
	_, err = f.gen.Unlock(ctx, ani.ReportCardID)
	require.NoError(t, err)
	_, err = f.gen.GenerateForClassGroup(ctx, f.school.ClassGroup.ClassGroupID, nil)
	assert.NoError(t, err)
}

func TestGenerate_HomeroomNoteSurvivesRegenerate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.gen.GenerateForClassGroup(ctx, f.school.ClassGroup.ClassGroupID, nil)
	require.NoError(t, err)
	ani := f.cardOf(t, 0)

	note := "Pertahankan prestasi."
	_, err = f.gen.UpdateHomeroomNote(ctx, ani.ReportCardID, &note)
	require.NoError(t, err)

	_, err = f.gen.GenerateForClassGroup(ctx, f.school.ClassGroup.ClassGroupID, nil)
	require.NoError(t, err)
	got := f.cardOf(t, 0)
	require.NotNil(t, got.ReportCardHomeroomNote)
	assert.Equal(t, note, *got.ReportCardHomeroomNote)
}

func TestGenerate_UsesPromotionDecision(t *testing.T) {
	f := newFixture(t)
	f.st.Put(&promoModel.ClassPromotionModel{
		ClassPromotionStudentID:        f.school.Students[0].StudentID,
		ClassPromotionFromTermID:       f.school.Term.AcademicTermID,
		ClassPromotionFromClassGroupID: f.school.ClassGroup.ClassGroupID,
		ClassPromotionStatus:           reportModel.PromotionPromoted,
	})

	_, err := f.gen.GenerateForClassGroup(context.Background(), f.school.ClassGroup.ClassGroupID, nil)
	require.NoError(t, err)
	assert.Equal(t, reportModel.PromotionPromoted, f.cardOf(t, 0).ReportCardPromotionStatus)
	assert.Equal(t, reportModel.PromotionPending, f.cardOf(t, 1).ReportCardPromotionStatus)
}

func TestGenerate_EmptyCohort(t *testing.T) {
	f := newFixture(t)
	empty := classModel.ClassGroupModel{ClassGroupTermID: f.school.Term.AcademicTermID, ClassGroupName: "VII-B"}
	f.st.Put(&empty)

	_, err := f.gen.GenerateForClassGroup(context.Background(), empty.ClassGroupID, nil)
	assert.True(t, errors.Is(err, apperrors.ErrEmptyCohort), "err = %v", err)
	assert.Empty(t, f.st.ReportCards())
	assert.Empty(t, f.mail.notices)
}

func TestGenerate_NoActiveTerm(t *testing.T) {
	st := inmem.New()
	cg := classModel.ClassGroupModel{ClassGroupTermID: uuid.New(), ClassGroupName: "VII-A"}
	st.Put(&cg)
	gen := service.NewGenerator(st.ReportCardRepo(), configs.DefaultReportPolicy(), nil)

	_, err := gen.GenerateForClassGroup(context.Background(), cg.ClassGroupID, nil)
	assert.True(t, errors.Is(err, apperrors.ErrNoActiveTerm), "err = %v", err)
}

func TestGenerate_StorageFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	f.st.FailWrites(errors.New("disk penuh"))

	_, err := f.gen.GenerateForClassGroup(context.Background(), f.school.ClassGroup.ClassGroupID, nil)
	var te *apperrors.TransactionError
	require.True(t, errors.As(err, &te), "err = %v", err)
	assert.Empty(t, f.st.ReportCards())
	assert.Empty(t, f.mail.notices)
}

func TestGenerateForEnrollment_TermMismatch(t *testing.T) {
	f := newFixture(t)
	_, err := f.gen.GenerateForEnrollment(context.Background(), f.school.Enrollments[0].ClassEnrollmentID, &f.school.NextTerm.AcademicTermID)
	ve, ok := apperrors.IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.FieldMap(), "term_id")
}

func TestListByClassGroup_RankOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.gen.GenerateForClassGroup(ctx, f.school.ClassGroup.ClassGroupID, nil)
	require.NoError(t, err)

	cards, err := f.gen.ListByClassGroup(ctx, f.school.ClassGroup.ClassGroupID, nil)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, []int{1, 1, 3}, []int{cards[0].ReportCardRank, cards[1].ReportCardRank, cards[2].ReportCardRank})
}
