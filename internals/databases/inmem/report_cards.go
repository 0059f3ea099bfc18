package inmem

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	attendanceModel "raportku_backend/internals/features/school/attendance/model"
	"raportku_backend/internals/features/school/report_cards/calc"
	reportModel "raportku_backend/internals/features/school/report_cards/model"
	reportService "raportku_backend/internals/features/school/report_cards/service"
	"raportku_backend/internals/helpers/apperrors"
)

type reportCardRepo struct {
	s  *Store
	tx *data
}

var _ reportService.Repository = (*reportCardRepo)(nil)

func (s *Store) ReportCardRepo() reportService.Repository {
	return &reportCardRepo{s: s}
}

func (r *reportCardRepo) WithTx(ctx context.Context, fn func(reportService.Repository) error) error {
	if r.tx != nil {
		return fn(r)
	}
	return r.s.tx(func(d *data) error {
		return fn(&reportCardRepo{s: r.s, tx: d})
	})
}

func (r *reportCardRepo) ActiveTermID(ctx context.Context) (id uuid.UUID, err error) {
	err = r.s.view(r.tx, func(d *data) error {
		id, err = d.activeTermID()
		return err
	})
	return id, err
}

func (r *reportCardRepo) FindEnrollment(ctx context.Context, enrollmentID uuid.UUID) (ref reportService.EnrollmentRef, err error) {
	err = r.s.view(r.tx, func(d *data) error {
		e, ok := d.enrollments[enrollmentID]
		if !ok {
			return errors.Wrap(apperrors.ErrNotFound, "enrollment")
		}
		ref = reportService.EnrollmentRef{
			EnrollmentID: e.ClassEnrollmentID,
			ClassGroupID: e.ClassEnrollmentClassGroupID,
			StudentID:    e.ClassEnrollmentStudentID,
			TermID:       e.ClassEnrollmentTermID,
		}
		return nil
	})
	return ref, err
}

func (r *reportCardRepo) LoadCohort(ctx context.Context, classGroupID, termID uuid.UUID) (co *reportService.Cohort, err error) {
	err = r.s.view(r.tx, func(d *data) error {
		cg, err := d.classGroup(classGroupID)
		if err != nil {
			return err
		}
		term, ok := d.terms[termID]
		if !ok || term.AcademicTermDeletedAt.Valid {
			return errors.Wrap(apperrors.ErrNotFound, "term")
		}

		co = &reportService.Cohort{
			ClassGroupID:   classGroupID,
			ClassGroupName: cg.ClassGroupName,
			TermID:         termID,
			TermLabel:      term.Label(),
			KKM:            map[uuid.UUID]float64{},
			Scores:         map[uuid.UUID]map[uuid.UUID][]calc.ScoreEntry{},
			Attendance:     map[uuid.UUID][]attendanceModel.AttendanceStatus{},
			Existing:       map[uuid.UUID]reportModel.ReportCardModel{},
			Promotions:     map[uuid.UUID]reportModel.PromotionStatus{},
		}

		inCohort := map[uuid.UUID]bool{}
		enrolled := map[uuid.UUID]bool{}
		for _, e := range d.roster(classGroupID, termID) {
			st := d.students[e.ClassEnrollmentStudentID]
			m := reportService.Member{
				EnrollmentID: e.ClassEnrollmentID,
				StudentID:    st.StudentID,
				StudentName:  st.StudentName,
			}
			if st.StudentParentName != nil {
				m.ParentName = *st.StudentParentName
			}
			if st.StudentParentEmail != nil {
				m.ParentEmail = *st.StudentParentEmail
			}
			co.Members = append(co.Members, m)
			inCohort[st.StudentID] = true
			enrolled[e.ClassEnrollmentID] = true
		}
		if len(co.Members) == 0 {
			return nil
		}

		taught := map[uuid.UUID]bool{}
		for _, ta := range d.assignments {
			if ta.TeachingAssignmentClassGroupID != classGroupID || ta.TeachingAssignmentTermID != termID {
				continue
			}
			sub, ok := d.subjects[ta.TeachingAssignmentSubjectID]
			if !ok || sub.SubjectDeletedAt.Valid || taught[sub.SubjectID] {
				continue
			}
			taught[sub.SubjectID] = true
			co.Subjects = append(co.Subjects, calc.SubjectRef{ID: sub.SubjectID, Code: sub.SubjectCode, Name: sub.SubjectName})
		}
		sort.Slice(co.Subjects, func(i, j int) bool { return co.Subjects[i].Code < co.Subjects[j].Code })

		for _, k := range d.kkms {
			if k.SubjectKKMTermID == termID && taught[k.SubjectKKMSubjectID] {
				co.KKM[k.SubjectKKMSubjectID] = k.SubjectKKMValue
			}
		}

		for _, sc := range d.scores {
			if !inCohort[sc.AssessmentScoreStudentID] {
				continue
			}
			a, ok := d.assessments[sc.AssessmentScoreAssessmentID]
			if !ok || a.AssessmentDeletedAt.Valid {
				continue
			}
			ta, ok := d.assignments[a.AssessmentTeachingAssignmentID]
			if !ok || ta.TeachingAssignmentTermID != termID || !taught[ta.TeachingAssignmentSubjectID] {
				continue
			}
			bySubject, ok := co.Scores[sc.AssessmentScoreStudentID]
			if !ok {
				bySubject = map[uuid.UUID][]calc.ScoreEntry{}
				co.Scores[sc.AssessmentScoreStudentID] = bySubject
			}
			bySubject[ta.TeachingAssignmentSubjectID] = append(bySubject[ta.TeachingAssignmentSubjectID], calc.ScoreEntry{
				AssessmentID: a.AssessmentID,
				Category:     string(a.AssessmentCategory),
				Weight:       a.AssessmentWeight,
				MaxScore:     a.AssessmentMaxScore,
				Score:        sc.AssessmentScoreValue,
			})
		}

		for _, rec := range d.records {
			if !inCohort[rec.AttendanceRecordStudentID] {
				continue
			}
			sess, ok := d.sessions[rec.AttendanceRecordSessionID]
			if !ok {
				continue
			}
			ta, ok := d.assignments[sess.AttendanceSessionTeachingAssignmentID]
			if !ok || ta.TeachingAssignmentTermID != termID {
				continue
			}
			co.Attendance[rec.AttendanceRecordStudentID] = append(co.Attendance[rec.AttendanceRecordStudentID], rec.AttendanceRecordStatus)
		}

		for _, c := range d.cards {
			if c.ReportCardTermID == termID && enrolled[c.ReportCardClassEnrollmentID] {
				c.Subjects = nil
				co.Existing[c.ReportCardClassEnrollmentID] = c
			}
		}
		for _, p := range d.promotions {
			if p.ClassPromotionFromTermID == termID && inCohort[p.ClassPromotionStudentID] {
				co.Promotions[p.ClassPromotionStudentID] = p.ClassPromotionStatus
			}
		}
		return nil
	})
	return co, err
}

func (r *reportCardRepo) SaveCard(ctx context.Context, card *reportModel.ReportCardModel) error {
	return r.s.view(r.tx, func(d *data) error {
		if err := r.s.failWrite(); err != nil {
			return err
		}
		t := now()
		row := *card
		row.ReportCardCreatedAt = t
		for id, ex := range d.cards {
			if ex.ReportCardClassEnrollmentID != card.ReportCardClassEnrollmentID || ex.ReportCardTermID != card.ReportCardTermID {
				continue
			}
			if ex.IsLocked() {
				return &apperrors.LockedStateError{EnrollmentIDs: []uuid.UUID{card.ReportCardClassEnrollmentID}}
			}
			row.ReportCardID = id
			row.ReportCardCreatedAt = ex.ReportCardCreatedAt
			row.ReportCardHomeroomNote = ex.ReportCardHomeroomNote
			row.ReportCardLockedAt = nil
			break
		}
		row.ReportCardUpdatedAt = t
		ensureID(&row.ReportCardID)

		subjects := make([]reportModel.ReportCardSubjectModel, len(card.Subjects))
		for i, s := range card.Subjects {
			s.ReportCardSubjectReportCardID = row.ReportCardID
			ensureID(&s.ReportCardSubjectID)
			s.ReportCardSubjectCreatedAt = t
			subjects[i] = s
		}
		row.Subjects = subjects
		d.cards[row.ReportCardID] = row

		*card = row
		card.Subjects = append([]reportModel.ReportCardSubjectModel(nil), subjects...)
		return nil
	})
}

func (r *reportCardRepo) FindCard(ctx context.Context, id uuid.UUID) (out *reportModel.ReportCardModel, err error) {
	err = r.s.view(r.tx, func(d *data) error {
		c, ok := d.cards[id]
		if !ok {
			return errors.Wrap(apperrors.ErrNotFound, "rapor")
		}
		c.Subjects = append([]reportModel.ReportCardSubjectModel(nil), c.Subjects...)
		sort.Slice(c.Subjects, func(i, j int) bool {
			return strings.Compare(c.Subjects[i].ReportCardSubjectSubjectCode, c.Subjects[j].ReportCardSubjectSubjectCode) < 0
		})
		out = &c
		return nil
	})
	return out, err
}

func (r *reportCardRepo) ListCards(ctx context.Context, classGroupID, termID uuid.UUID) (out []reportModel.ReportCardModel, err error) {
	err = r.s.view(r.tx, func(d *data) error {
		for _, c := range d.cards {
			if c.ReportCardClassGroupID == classGroupID && c.ReportCardTermID == termID {
				c.Subjects = nil
				out = append(out, c)
			}
		}
		d.sortCards(out)
		return nil
	})
	return out, err
}

func (r *reportCardRepo) SetLockedAt(ctx context.Context, id uuid.UUID, at *time.Time) error {
	return r.s.view(r.tx, func(d *data) error {
		if err := r.s.failWrite(); err != nil {
			return err
		}
		c, ok := d.cards[id]
		if !ok {
			return errors.Wrap(apperrors.ErrNotFound, "rapor")
		}
		c.ReportCardLockedAt = at
		c.ReportCardUpdatedAt = now()
		d.cards[id] = c
		return nil
	})
}

func (r *reportCardRepo) SetHomeroomNote(ctx context.Context, id uuid.UUID, note *string) error {
	return r.s.view(r.tx, func(d *data) error {
		if err := r.s.failWrite(); err != nil {
			return err
		}
		c, ok := d.cards[id]
		if !ok {
			return errors.Wrap(apperrors.ErrNotFound, "rapor")
		}
		if c.IsLocked() {
			return &apperrors.LockedStateError{EnrollmentIDs: []uuid.UUID{c.ReportCardClassEnrollmentID}}
		}
		c.ReportCardHomeroomNote = note
		c.ReportCardUpdatedAt = now()
		d.cards[id] = c
		return nil
	})
}
