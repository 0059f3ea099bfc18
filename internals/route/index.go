// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"raportku_backend/internals/configs"
	"raportku_backend/internals/constants"
	termRoute "raportku_backend/internals/features/school/academics/academic_terms/route"
	subjectRoute "raportku_backend/internals/features/school/academics/subjects/route"
	assessmentRoute "raportku_backend/internals/features/school/assessments/route"
	assessmentService "raportku_backend/internals/features/school/assessments/service"
	attendanceRoute "raportku_backend/internals/features/school/attendance/route"
	attendanceService "raportku_backend/internals/features/school/attendance/service"
	classGroupRoute "raportku_backend/internals/features/school/classes/class_groups/route"
	taRoute "raportku_backend/internals/features/school/classes/teaching_assignments/route"
	promoRoute "raportku_backend/internals/features/school/promotions/route"
	promoService "raportku_backend/internals/features/school/promotions/service"
	reportRoute "raportku_backend/internals/features/school/report_cards/route"
	reportService "raportku_backend/internals/features/school/report_cards/service"
	studentRoute "raportku_backend/internals/features/school/students/route"
	authRepo "raportku_backend/internals/features/users/auth/repository"
	authRoute "raportku_backend/internals/features/users/auth/route"
	authMiddleware "raportku_backend/internals/middlewares/auth"
	"raportku_backend/internals/services/notify"
)

var startTime time.Time

// Deps: dependensi yang dibangun di main (policy, dispatcher notifikasi, blacklist token).
type Deps struct {
	Policy    configs.ReportPolicy
	Notifier  notify.Dispatcher
	JWTSecret string
	Tokens    *authRepo.TokenBlacklistRepository
}

func SetupRoutes(app *fiber.App, db *gorm.DB, deps Deps) {
	startTime = time.Now()

	// ===================== SERVICES =====================
	generator := reportService.NewGenerator(reportService.NewGormRepository(db), deps.Policy, deps.Notifier)
	processor := promoService.NewProcessor(promoService.NewGormRepository(db))
	scores := assessmentService.NewScoreService(assessmentService.NewGormRepository(db))
	attendance := attendanceService.NewAttendanceService(attendanceService.NewGormRepository(db))

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	BaseRoutes(public)

	if deps.Tokens == nil {
		deps.Tokens = authRepo.NewTokenBlacklistRepository(db, deps.JWTSecret)
	}
	jwt := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              deps.JWTSecret,
		AllowCookieFallback: true,
		Revocations:         deps.Tokens,
	})

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	user := app.Group("/api/u", jwt)
	authRoute.AuthRoutes(user, deps.Tokens)
	termRoute.AcademicTermsUserRoutes(user, db)
	assessmentRoute.AssessmentRoutes(user, scores)
	attendanceRoute.AttendanceRoutes(user, attendance)
	reportRoute.ReportCardStaffRoutes(user, generator)
	reportRoute.ReportCardUserRoutes(user, generator)
	promoRoute.ClassPromotionRoutes(user, processor)

	// ===================== ADMIN (master data) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + capability)...")
	admin := app.Group("/api/a", jwt,
		authMiddleware.RequireCapability(constants.CapManageMasterData, "mengelola data master"),
	)
	termRoute.AcademicTermsAdminRoutes(admin, db)
	studentRoute.StudentAdminRoutes(admin, db)
	classGroupRoute.ClassGroupAdminRoutes(admin, db)
	subjectRoute.SubjectAdminRoutes(admin, db, deps.Policy.DefaultKKM)
	taRoute.TeachingAssignmentAdminRoutes(admin, db)

	log.Println("[INFO] Routes siap.")
}
