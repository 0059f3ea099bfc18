package configs

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret string
	Conf      *viper.Viper
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	Conf = newViper()

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "Raportku")
	v.SetDefault("PORT", "3000")
	v.SetDefault("MAIL_FROM", "noreply@raportku.local")
	v.SetDefault("REPORT_GRADING_SCALE", string(ScalePredicate))
	v.SetDefault("REPORT_SKILL_CATEGORIES", "praktik")
	v.SetDefault("REPORT_DEFAULT_KKM", 70.0)
	v.SetDefault("REPORT_NULL_SCORE_PASSES", true)
	v.AutomaticEnv()
	return v
}

func conf() *viper.Viper {
	if Conf == nil {
		Conf = newViper()
	}
	return Conf
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func AppEnv() string       { return conf().GetString("APP_ENV") }
func AppName() string      { return conf().GetString("APP_NAME") }
func Port() string         { return conf().GetString("PORT") }
func MailFrom() string     { return conf().GetString("MAIL_FROM") }
func SendgridKey() string  { return conf().GetString("SENDGRID_API_KEY") }
func RollbarToken() string { return conf().GetString("ROLLBAR_TOKEN") }

// =======================
// REPORT POLICY
// =======================

type GradingScale string

const (
	// A/B/C/D/E predikat (≥90, ≥80, ≥70, ≥60)
	ScalePredicate GradingScale = "predicate"
	// A/B/C/D (≥90, ≥80, ≥70)
	ScaleLetter4 GradingScale = "letter4"
)

// ReportPolicy: aturan perhitungan rapor yang dipakai satu deployment.
type ReportPolicy struct {
	Scale           GradingScale    `json:"scale"`
	SkillCategories map[string]bool `json:"skill_categories"`
	DefaultKKM      float64         `json:"default_kkm"`
	NullScorePasses bool            `json:"null_score_passes"`
}

func DefaultReportPolicy() ReportPolicy {
	return ReportPolicy{
		Scale:           ScalePredicate,
		SkillCategories: map[string]bool{"praktik": true},
		DefaultKKM:      70,
		NullScorePasses: true,
	}
}

func LoadReportPolicy() (ReportPolicy, error) {
	v := conf()
	p := ReportPolicy{
		Scale:           GradingScale(strings.ToLower(strings.TrimSpace(v.GetString("REPORT_GRADING_SCALE")))),
		SkillCategories: map[string]bool{},
		DefaultKKM:      v.GetFloat64("REPORT_DEFAULT_KKM"),
		NullScorePasses: v.GetBool("REPORT_NULL_SCORE_PASSES"),
	}
	if p.Scale != ScalePredicate && p.Scale != ScaleLetter4 {
		return p, fmt.Errorf("REPORT_GRADING_SCALE tidak dikenal: %q", p.Scale)
	}
	for _, c := range strings.Split(v.GetString("REPORT_SKILL_CATEGORIES"), ",") {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			p.SkillCategories[c] = true
		}
	}
	if p.DefaultKKM < 0 || p.DefaultKKM > 100 {
		return p, fmt.Errorf("REPORT_DEFAULT_KKM harus 0..100, dapat %.2f", p.DefaultKKM)
	}
	return p, nil
}

// IsSkill: kategori → bucket keterampilan, sisanya pengetahuan.
func (p ReportPolicy) IsSkill(category string) bool {
	return p.SkillCategories[strings.ToLower(strings.TrimSpace(category))]
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if AppEnv() == "development" {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && err != gorm.ErrRecordNotFound:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
