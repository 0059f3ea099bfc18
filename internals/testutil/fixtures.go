// Package testutil: fixture bersama untuk test service dan controller.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"raportku_backend/internals/databases/inmem"
	termModel "raportku_backend/internals/features/school/academics/academic_terms/model"
	subjectModel "raportku_backend/internals/features/school/academics/subjects/model"
	assessmentModel "raportku_backend/internals/features/school/assessments/model"
	attendanceModel "raportku_backend/internals/features/school/attendance/model"
	classModel "raportku_backend/internals/features/school/classes/class_groups/model"
	taModel "raportku_backend/internals/features/school/classes/teaching_assignments/model"
	studentModel "raportku_backend/internals/features/school/students/model"
)

// School: satu term aktif dengan satu rombel, plus term & rombel berikutnya untuk kenaikan.
type School struct {
	Term           termModel.AcademicTermModel
	NextTerm       termModel.AcademicTermModel
	ClassGroup     classModel.ClassGroupModel
	NextClassGroup classModel.ClassGroupModel
	Students       []studentModel.StudentModel
	Enrollments    []classModel.ClassEnrollmentModel
	Subjects       []subjectModel.SubjectModel
	Assignments    []taModel.TeachingAssignmentModel
	TeacherID      uuid.UUID
}

func strPtr(s string) *string { return &s }

// NewSchool: rombel VII-A (Ani, Budi, Citra) dengan mapel MTK dan IPA.
func NewSchool(t *testing.T, st *inmem.Store, studentNames ...string) School {
	t.Helper()
	if len(studentNames) == 0 {
		studentNames = []string{"Ani", "Budi", "Citra"}
	}
	s := School{TeacherID: uuid.New()}

	s.Term = termModel.AcademicTermModel{
		AcademicTermAcademicYear: "2025/2026",
		AcademicTermName:         "Ganjil",
		AcademicTermStartDate:    time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
		AcademicTermEndDate:      time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC),
		AcademicTermIsActive:     true,
	}
	s.NextTerm = termModel.AcademicTermModel{
		AcademicTermAcademicYear: "2025/2026",
		AcademicTermName:         "Genap",
		AcademicTermStartDate:    time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		AcademicTermEndDate:      time.Date(2026, 6, 19, 0, 0, 0, 0, time.UTC),
	}
	st.Put(&s.Term, &s.NextTerm)

	s.ClassGroup = classModel.ClassGroupModel{ClassGroupTermID: s.Term.AcademicTermID, ClassGroupName: "VII-A", ClassGroupGradeLevel: 7}
	s.NextClassGroup = classModel.ClassGroupModel{ClassGroupTermID: s.NextTerm.AcademicTermID, ClassGroupName: "VIII-A", ClassGroupGradeLevel: 8}
	st.Put(&s.ClassGroup, &s.NextClassGroup)

	for i, name := range studentNames {
		stu := studentModel.StudentModel{
			StudentNIS:         "2025" + string(rune('0'+i)),
			StudentName:        name,
			StudentParentName:  strPtr("Wali " + name),
			StudentParentEmail: strPtr("wali." + name + "@example.com"),
			StudentIsActive:    true,
		}
		st.Put(&stu)
		enr := classModel.ClassEnrollmentModel{
			ClassEnrollmentClassGroupID: s.ClassGroup.ClassGroupID,
			ClassEnrollmentStudentID:    stu.StudentID,
			ClassEnrollmentTermID:       s.Term.AcademicTermID,
		}
		st.Put(&enr)
		s.Students = append(s.Students, stu)
		s.Enrollments = append(s.Enrollments, enr)
	}

	for _, code := range []string{"MTK", "IPA"} {
		sub := subjectModel.SubjectModel{SubjectCode: code, SubjectName: code}
		st.Put(&sub)
		ta := taModel.TeachingAssignmentModel{
			TeachingAssignmentTermID:       s.Term.AcademicTermID,
			TeachingAssignmentClassGroupID: s.ClassGroup.ClassGroupID,
			TeachingAssignmentSubjectID:    sub.SubjectID,
			TeachingAssignmentTeacherID:    s.TeacherID,
		}
		st.Put(&ta)
		s.Subjects = append(s.Subjects, sub)
		s.Assignments = append(s.Assignments, ta)
	}
	return s
}

// AddAssessment membuat penilaian pada penugasan ke-i.
func (s School) AddAssessment(t *testing.T, st *inmem.Store, assignment int, category assessmentModel.AssessmentCategory, weight, maxScore float64) assessmentModel.AssessmentModel {
	t.Helper()
	a := assessmentModel.AssessmentModel{
		AssessmentTeachingAssignmentID: s.Assignments[assignment].TeachingAssignmentID,
		AssessmentTitle:                string(category),
		AssessmentCategory:             category,
		AssessmentWeight:               weight,
		AssessmentMaxScore:             maxScore,
	}
	st.Put(&a)
	return a
}

func (s School) AddScore(t *testing.T, st *inmem.Store, a assessmentModel.AssessmentModel, student int, score float64) {
	t.Helper()
	st.Put(&assessmentModel.AssessmentScoreModel{
		AssessmentScoreAssessmentID: a.AssessmentID,
		AssessmentScoreStudentID:    s.Students[student].StudentID,
		AssessmentScoreValue:        score,
	})
}

// AddAttendance: satu sesi pada penugasan ke-i dengan status per siswa (urutan Students).
func (s School) AddAttendance(t *testing.T, st *inmem.Store, assignment int, date time.Time, statuses ...attendanceModel.AttendanceStatus) attendanceModel.AttendanceSessionModel {
	t.Helper()
	sess := attendanceModel.AttendanceSessionModel{
		AttendanceSessionTeachingAssignmentID: s.Assignments[assignment].TeachingAssignmentID,
		AttendanceSessionDate:                 date,
	}
	st.Put(&sess)
	for i, status := range statuses {
		st.Put(&attendanceModel.AttendanceRecordModel{
			AttendanceRecordSessionID: sess.AttendanceSessionID,
			AttendanceRecordStudentID: s.Students[i].StudentID,
			AttendanceRecordStatus:    status,
		})
	}
	return sess
}
