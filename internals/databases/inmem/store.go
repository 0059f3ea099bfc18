// Package inmem: penyimpanan di memori yang memenuhi interface Repository tiap fitur.
// Dipakai untuk test service dan controller tanpa Postgres. WithTx bekerja pada salinan
// data dan hanya di-commit bila fn sukses, jadi semantik all-or-nothing ikut teruji.
package inmem

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	termModel "raportku_backend/internals/features/school/academics/academic_terms/model"
	subjectModel "raportku_backend/internals/features/school/academics/subjects/model"
	assessmentModel "raportku_backend/internals/features/school/assessments/model"
	attendanceModel "raportku_backend/internals/features/school/attendance/model"
	classModel "raportku_backend/internals/features/school/classes/class_groups/model"
	taModel "raportku_backend/internals/features/school/classes/teaching_assignments/model"
	promoModel "raportku_backend/internals/features/school/promotions/model"
	reportModel "raportku_backend/internals/features/school/report_cards/model"
	studentModel "raportku_backend/internals/features/school/students/model"
	"raportku_backend/internals/helpers/apperrors"
)

type data struct {
	terms       map[uuid.UUID]termModel.AcademicTermModel
	students    map[uuid.UUID]studentModel.StudentModel
	classGroups map[uuid.UUID]classModel.ClassGroupModel
	enrollments map[uuid.UUID]classModel.ClassEnrollmentModel
	subjects    map[uuid.UUID]subjectModel.SubjectModel
	kkms        map[uuid.UUID]subjectModel.SubjectKKMModel
	assignments map[uuid.UUID]taModel.TeachingAssignmentModel
	assessments map[uuid.UUID]assessmentModel.AssessmentModel
	scores      map[uuid.UUID]assessmentModel.AssessmentScoreModel
	sessions    map[uuid.UUID]attendanceModel.AttendanceSessionModel
	records     map[uuid.UUID]attendanceModel.AttendanceRecordModel
	cards       map[uuid.UUID]reportModel.ReportCardModel
	promotions  map[uuid.UUID]promoModel.ClassPromotionModel
}

func newData() *data {
	return &data{
		terms:       map[uuid.UUID]termModel.AcademicTermModel{},
		students:    map[uuid.UUID]studentModel.StudentModel{},
		classGroups: map[uuid.UUID]classModel.ClassGroupModel{},
		enrollments: map[uuid.UUID]classModel.ClassEnrollmentModel{},
		subjects:    map[uuid.UUID]subjectModel.SubjectModel{},
		kkms:        map[uuid.UUID]subjectModel.SubjectKKMModel{},
		assignments: map[uuid.UUID]taModel.TeachingAssignmentModel{},
		assessments: map[uuid.UUID]assessmentModel.AssessmentModel{},
		scores:      map[uuid.UUID]assessmentModel.AssessmentScoreModel{},
		sessions:    map[uuid.UUID]attendanceModel.AttendanceSessionModel{},
		records:     map[uuid.UUID]attendanceModel.AttendanceRecordModel{},
		cards:       map[uuid.UUID]reportModel.ReportCardModel{},
		promotions:  map[uuid.UUID]promoModel.ClassPromotionModel{},
	}
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (d *data) clone() *data {
	out := &data{
		terms:       copyMap(d.terms),
		students:    copyMap(d.students),
		classGroups: copyMap(d.classGroups),
		enrollments: copyMap(d.enrollments),
		subjects:    copyMap(d.subjects),
		kkms:        copyMap(d.kkms),
		assignments: copyMap(d.assignments),
		assessments: copyMap(d.assessments),
		scores:      copyMap(d.scores),
		sessions:    copyMap(d.sessions),
		records:     copyMap(d.records),
		cards:       make(map[uuid.UUID]reportModel.ReportCardModel, len(d.cards)),
		promotions:  copyMap(d.promotions),
	}
	for id, c := range d.cards {
		c.Subjects = append([]reportModel.ReportCardSubjectModel(nil), c.Subjects...)
		out.cards[id] = c
	}
	return out
}

// Store aman dipakai bersamaan; satu transaksi berjalan pada satu waktu.
type Store struct {
	mu       sync.Mutex
	d        *data
	writeErr error
}

func New() *Store {
	return &Store{d: newData()}
}

// FailWrites membuat operasi tulis berikutnya gagal dengan err (nil untuk menonaktifkan).
func (s *Store) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

// tx: fn bekerja pada salinan; commit hanya bila sukses.
func (s *Store) tx(fn func(d *data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	scratch := s.d.clone()
	if err := fn(scratch); err != nil {
		return err
	}
	s.d = scratch
	return nil
}

// view menjalankan fn pada data transaksi bila ada, atau data utama dengan lock.
func (s *Store) view(txd *data, fn func(d *data) error) error {
	if txd != nil {
		return fn(txd)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.d)
}

// failWrite dipanggil saat lock sudah dipegang.
func (s *Store) failWrite() error {
	if s.writeErr != nil {
		return errors.Wrap(s.writeErr, "inmem write")
	}
	return nil
}

/* =========================
   Seed
========================= */

// Put menyimpan model apa adanya; id kosong diisi uuid baru.
func (s *Store) Put(models ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.d
	for _, m := range models {
		switch v := m.(type) {
		case *termModel.AcademicTermModel:
			ensureID(&v.AcademicTermID)
			if v.AcademicTermIsActive {
				for id, t := range d.terms {
					t.AcademicTermIsActive = false
					d.terms[id] = t
				}
			}
			d.terms[v.AcademicTermID] = *v
		case *studentModel.StudentModel:
			ensureID(&v.StudentID)
			d.students[v.StudentID] = *v
		case *classModel.ClassGroupModel:
			ensureID(&v.ClassGroupID)
			d.classGroups[v.ClassGroupID] = *v
		case *classModel.ClassEnrollmentModel:
			ensureID(&v.ClassEnrollmentID)
			if v.ClassEnrollmentTermID == uuid.Nil {
				v.ClassEnrollmentTermID = d.classGroups[v.ClassEnrollmentClassGroupID].ClassGroupTermID
			}
			d.enrollments[v.ClassEnrollmentID] = *v
		case *subjectModel.SubjectModel:
			ensureID(&v.SubjectID)
			d.subjects[v.SubjectID] = *v
		case *subjectModel.SubjectKKMModel:
			ensureID(&v.SubjectKKMID)
			d.kkms[v.SubjectKKMID] = *v
		case *taModel.TeachingAssignmentModel:
			ensureID(&v.TeachingAssignmentID)
			d.assignments[v.TeachingAssignmentID] = *v
		case *assessmentModel.AssessmentModel:
			ensureID(&v.AssessmentID)
			d.assessments[v.AssessmentID] = *v
		case *assessmentModel.AssessmentScoreModel:
			ensureID(&v.AssessmentScoreID)
			d.scores[v.AssessmentScoreID] = *v
		case *attendanceModel.AttendanceSessionModel:
			ensureID(&v.AttendanceSessionID)
			d.sessions[v.AttendanceSessionID] = *v
		case *attendanceModel.AttendanceRecordModel:
			ensureID(&v.AttendanceRecordID)
			d.records[v.AttendanceRecordID] = *v
		case *reportModel.ReportCardModel:
			ensureID(&v.ReportCardID)
			d.cards[v.ReportCardID] = *v
		case *promoModel.ClassPromotionModel:
			ensureID(&v.ClassPromotionID)
			d.promotions[v.ClassPromotionID] = *v
		default:
			panic(errors.Errorf("inmem: model tidak dikenal %T", m))
		}
	}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

/* =========================
   Snapshot untuk assertion
========================= */

// ReportCards: seluruh rapor, urut peringkat lalu nama siswa.
func (s *Store) ReportCards() []reportModel.ReportCardModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]reportModel.ReportCardModel, 0, len(s.d.cards))
	for _, c := range s.d.cards {
		out = append(out, c)
	}
	s.d.sortCards(out)
	return out
}

func (s *Store) Promotions() []promoModel.ClassPromotionModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]promoModel.ClassPromotionModel, 0, len(s.d.promotions))
	for _, p := range s.d.promotions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ClassPromotionStudentID.String() < out[j].ClassPromotionStudentID.String()
	})
	return out
}

func (s *Store) Scores() []assessmentModel.AssessmentScoreModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]assessmentModel.AssessmentScoreModel, 0, len(s.d.scores))
	for _, sc := range s.d.scores {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AssessmentScoreStudentID.String() < out[j].AssessmentScoreStudentID.String()
	})
	return out
}

func (s *Store) AttendanceRecords() []attendanceModel.AttendanceRecordModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]attendanceModel.AttendanceRecordModel, 0, len(s.d.records))
	for _, r := range s.d.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AttendanceRecordStudentID.String() < out[j].AttendanceRecordStudentID.String()
	})
	return out
}

/* =========================
   Query bersama
========================= */

func (d *data) activeTermID() (uuid.UUID, error) {
	for id, t := range d.terms {
		if t.AcademicTermIsActive && !t.AcademicTermDeletedAt.Valid {
			return id, nil
		}
	}
	return uuid.Nil, apperrors.ErrNoActiveTerm
}

func (d *data) classGroup(id uuid.UUID) (*classModel.ClassGroupModel, error) {
	cg, ok := d.classGroups[id]
	if !ok || cg.ClassGroupDeletedAt.Valid {
		return nil, errors.Wrap(apperrors.ErrNotFound, "rombel")
	}
	return &cg, nil
}

func (d *data) assignment(id uuid.UUID) (*taModel.TeachingAssignmentModel, error) {
	ta, ok := d.assignments[id]
	if !ok {
		return nil, errors.Wrap(apperrors.ErrNotFound, "penugasan mengajar")
	}
	return &ta, nil
}

// roster: enrollment aktif, urut nama siswa.
func (d *data) roster(classGroupID, termID uuid.UUID) []classModel.ClassEnrollmentModel {
	var out []classModel.ClassEnrollmentModel
	for _, e := range d.enrollments {
		if e.ClassEnrollmentClassGroupID != classGroupID || e.ClassEnrollmentTermID != termID {
			continue
		}
		st, ok := d.students[e.ClassEnrollmentStudentID]
		if !ok || st.StudentDeletedAt.Valid {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return d.studentName(out[i].ClassEnrollmentStudentID) < d.studentName(out[j].ClassEnrollmentStudentID)
	})
	return out
}

func (d *data) rosterSet(classGroupID, termID uuid.UUID) map[uuid.UUID]bool {
	out := map[uuid.UUID]bool{}
	for _, e := range d.roster(classGroupID, termID) {
		out[e.ClassEnrollmentStudentID] = true
	}
	return out
}

func (d *data) studentName(id uuid.UUID) string {
	return d.students[id].StudentName
}

func (d *data) sortCards(cards []reportModel.ReportCardModel) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].ReportCardRank != cards[j].ReportCardRank {
			return cards[i].ReportCardRank < cards[j].ReportCardRank
		}
		return d.studentName(cards[i].ReportCardStudentID) < d.studentName(cards[j].ReportCardStudentID)
	})
}

func now() time.Time { return time.Now() }
