// file: internals/seeds/runner.go
package seeds

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	termModel "raportku_backend/internals/features/school/academics/academic_terms/model"
	subjectModel "raportku_backend/internals/features/school/academics/subjects/model"
	classModel "raportku_backend/internals/features/school/classes/class_groups/model"
	taModel "raportku_backend/internals/features/school/classes/teaching_assignments/model"
	studentModel "raportku_backend/internals/features/school/students/model"
)

// Struktur file data_demo_school.json
type DemoSeed struct {
	Term struct {
		AcademicYear string `json:"academic_year"`
		Name         string `json:"name"`
		StartDate    string `json:"start_date"`
		EndDate      string `json:"end_date"`
	} `json:"term"`
	ClassGroup struct {
		Name       string `json:"name"`
		GradeLevel int    `json:"grade_level"`
	} `json:"class_group"`
	TeacherID string `json:"teacher_id"`
	Subjects  []struct {
		Code string   `json:"code"`
		Name string   `json:"name"`
		KKM  *float64 `json:"kkm,omitempty"`
	} `json:"subjects"`
	Students []struct {
		NIS         string  `json:"nis"`
		Name        string  `json:"name"`
		Gender      *string `json:"gender,omitempty"`
		ParentName  *string `json:"parent_name,omitempty"`
		ParentEmail *string `json:"parent_email,omitempty"`
	} `json:"students"`
}

func LoadDemoSeed(filePath string) (*DemoSeed, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("gagal membaca file seed: %w", err)
	}
	var s DemoSeed
	if err := sonic.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("gagal decode JSON seed: %w", err)
	}
	if strings.TrimSpace(s.Term.AcademicYear) == "" || strings.TrimSpace(s.ClassGroup.Name) == "" {
		return nil, fmt.Errorf("seed wajib punya term.academic_year dan class_group.name")
	}
	if _, err := uuid.Parse(s.TeacherID); err != nil {
		return nil, fmt.Errorf("teacher_id tidak valid: %w", err)
	}
	return &s, nil
}

// RunAllSeeds mengisi data demo. Aman dijalankan berulang: setiap baris dicari dulu lewat natural key.
func RunAllSeeds(db *gorm.DB, filePath string) error {
	s, err := LoadDemoSeed(filePath)
	if err != nil {
		return err
	}
	start, err := time.Parse("2006-01-02", s.Term.StartDate)
	if err != nil {
		return fmt.Errorf("term.start_date: %w", err)
	}
	end, err := time.Parse("2006-01-02", s.Term.EndDate)
	if err != nil {
		return fmt.Errorf("term.end_date: %w", err)
	}
	teacherID := uuid.MustParse(s.TeacherID)

	return db.Transaction(func(tx *gorm.DB) error {
		// term: aktif hanya kalau belum ada term aktif lain
		var activeCount int64
		if err := tx.Model(&termModel.AcademicTermModel{}).
			Where("academic_term_is_active = TRUE").Count(&activeCount).Error; err != nil {
			return err
		}
		var term termModel.AcademicTermModel
		if err := tx.
			Where("academic_term_academic_year = ? AND academic_term_name = ?", s.Term.AcademicYear, s.Term.Name).
			Attrs(termModel.AcademicTermModel{
				AcademicTermStartDate: start,
				AcademicTermEndDate:   end,
				AcademicTermIsActive:  activeCount == 0,
			}).
			FirstOrCreate(&term, termModel.AcademicTermModel{
				AcademicTermAcademicYear: s.Term.AcademicYear,
				AcademicTermName:         s.Term.Name,
			}).Error; err != nil {
			return fmt.Errorf("seed term: %w", err)
		}

		var group classModel.ClassGroupModel
		if err := tx.
			Where("class_group_term_id = ? AND class_group_name = ?", term.AcademicTermID, s.ClassGroup.Name).
			Attrs(classModel.ClassGroupModel{ClassGroupGradeLevel: s.ClassGroup.GradeLevel, ClassGroupHomeroomTeacherID: &teacherID}).
			FirstOrCreate(&group, classModel.ClassGroupModel{ClassGroupTermID: term.AcademicTermID, ClassGroupName: s.ClassGroup.Name}).Error; err != nil {
			return fmt.Errorf("seed rombel: %w", err)
		}

		for _, sub := range s.Subjects {
			var m subjectModel.SubjectModel
			code := strings.ToUpper(strings.TrimSpace(sub.Code))
			if err := tx.Where("subject_code = ?", code).
				Attrs(subjectModel.SubjectModel{SubjectName: sub.Name}).
				FirstOrCreate(&m, subjectModel.SubjectModel{SubjectCode: code}).Error; err != nil {
				return fmt.Errorf("seed mapel %s: %w", code, err)
			}
			if sub.KKM != nil {
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&subjectModel.SubjectKKMModel{
					SubjectKKMSubjectID: m.SubjectID,
					SubjectKKMTermID:    term.AcademicTermID,
					SubjectKKMValue:     *sub.KKM,
				}).Error; err != nil {
					return fmt.Errorf("seed KKM %s: %w", code, err)
				}
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&taModel.TeachingAssignmentModel{
				TeachingAssignmentTermID:       term.AcademicTermID,
				TeachingAssignmentClassGroupID: group.ClassGroupID,
				TeachingAssignmentSubjectID:    m.SubjectID,
				TeachingAssignmentTeacherID:    teacherID,
			}).Error; err != nil {
				return fmt.Errorf("seed penugasan %s: %w", code, err)
			}
		}

		for _, st := range s.Students {
			var m studentModel.StudentModel
			if err := tx.Where("student_nis = ?", strings.TrimSpace(st.NIS)).
				Attrs(studentModel.StudentModel{
					StudentName:        st.Name,
					StudentGender:      st.Gender,
					StudentParentName:  st.ParentName,
					StudentParentEmail: st.ParentEmail,
					StudentIsActive:    true,
				}).
				FirstOrCreate(&m, studentModel.StudentModel{StudentNIS: strings.TrimSpace(st.NIS)}).Error; err != nil {
				return fmt.Errorf("seed siswa %s: %w", st.NIS, err)
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&classModel.ClassEnrollmentModel{
				ClassEnrollmentClassGroupID: group.ClassGroupID,
				ClassEnrollmentStudentID:    m.StudentID,
				ClassEnrollmentTermID:       term.AcademicTermID,
			}).Error; err != nil {
				return fmt.Errorf("seed enrollment %s: %w", st.NIS, err)
			}
		}

		log.Printf("✅ Seed demo: term=%s rombel=%s mapel=%d siswa=%d",
			term.Label(), group.ClassGroupName, len(s.Subjects), len(s.Students))
		return nil
	})
}
