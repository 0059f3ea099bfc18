package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"raportku_backend/internals/configs"
	termModel "raportku_backend/internals/features/school/academics/academic_terms/model"
	subjectModel "raportku_backend/internals/features/school/academics/subjects/model"
	assessmentModel "raportku_backend/internals/features/school/assessments/model"
	attendanceModel "raportku_backend/internals/features/school/attendance/model"
	classModel "raportku_backend/internals/features/school/classes/class_groups/model"
	taModel "raportku_backend/internals/features/school/classes/teaching_assignments/model"
	promoModel "raportku_backend/internals/features/school/promotions/model"
	reportModel "raportku_backend/internals/features/school/report_cards/model"
	studentModel "raportku_backend/internals/features/school/students/model"
	authModel "raportku_backend/internals/features/users/auth/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	// statement_timeout selaras dengan timeout request di main.go
	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=raportku&options=-c statement_timeout=5000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		getenv("DB_PORT", "5432"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger:                 configs.NewGormLogger(),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate: skema tabel + index yang tidak bisa dinyatakan lewat tag gorm.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("extension pgcrypto: %w", err)
	}
	if err := db.AutoMigrate(
		&studentModel.StudentModel{},
		&termModel.AcademicTermModel{},
		&classModel.ClassGroupModel{},
		&classModel.ClassEnrollmentModel{},
		&subjectModel.SubjectModel{},
		&subjectModel.SubjectKKMModel{},
		&taModel.TeachingAssignmentModel{},
		&assessmentModel.AssessmentModel{},
		&assessmentModel.AssessmentScoreModel{},
		&attendanceModel.AttendanceSessionModel{},
		&attendanceModel.AttendanceRecordModel{},
		&reportModel.ReportCardModel{},
		&reportModel.ReportCardSubjectModel{},
		&promoModel.ClassPromotionModel{},
		&authModel.TokenBlacklistModel{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	stmts := []string{
		// maksimal satu term aktif
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_academic_terms_single_active
		   ON academic_terms ((TRUE)) WHERE academic_term_is_active AND academic_term_deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_report_cards_group_term_rank
		   ON report_cards (report_card_class_group_id, report_card_term_id, report_card_rank)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_records_student
		   ON attendance_records (attendance_record_student_id, attendance_record_status)`,
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			return fmt.Errorf("index: %w", err)
		}
	}
	log.Println("✅ Migrasi skema selesai.")
	return nil
}

func WarmUpQueries() {
	// jalankan ringan supaya koneksi/pool “keisi” & siap
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
