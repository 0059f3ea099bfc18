package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"raportku_backend/internals/configs"
	database "raportku_backend/internals/databases"
	authRepo "raportku_backend/internals/features/users/auth/repository"
	authScheduler "raportku_backend/internals/features/users/auth/scheduler"
	helper "raportku_backend/internals/helpers"
	middlewares "raportku_backend/internals/middlewares"
	routes "raportku_backend/internals/route"
	"raportku_backend/internals/seeds"
	"raportku_backend/internals/services/errlog"
	"raportku_backend/internals/services/notify"
)

func main() {
	configs.LoadEnv()

	// 📣 Rollbar (no-op kalau token kosong)
	host, _ := os.Hostname()
	errlog.Init(errlog.Options{
		Token:       configs.RollbarToken(),
		Environment: configs.AppEnv(),
		ServerHost:  host,
		CodeVersion: configs.GetEnv("RAILWAY_GIT_COMMIT_SHA"),
	})
	defer errlog.Close()

	policy, err := configs.LoadReportPolicy()
	if err != nil {
		log.Fatalf("❌ Konfigurasi rapor tidak valid: %v", err)
	}
	log.Printf("✅ Skala nilai: %s, KKM default %.2f", policy.Scale, policy.DefaultKKM)

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.FromAppError(c, err)
		},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = utils.UUID()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals("reqid", id)
		start := time.Now()
		// HTTP timeout guard (selaras dengan statement_timeout di DB)
		ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + migrasi
	database.ConnectDB()
	database.TunePool()
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("❌ Migrasi gagal: %v", err)
	}
	if configs.GetEnv("SEED_DEMO") == "true" {
		if err := seeds.RunAllSeeds(database.DB, configs.GetEnv("SEED_FILE", "internals/seeds/data_demo_school.json")); err != nil {
			log.Fatalf("❌ Seed demo gagal: %v", err)
		}
	}
	database.WarmUpQueries()

	// 🧹 Blacklist token logout + pembersihan berkala
	tokens := authRepo.NewTokenBlacklistRepository(database.DB, configs.JWTSecret)
	cleanup, err := authScheduler.StartBlacklistCleanup(tokens, configs.GetEnv("TOKEN_BLACKLIST_CRON", "@every 6h"))
	if err != nil {
		log.Fatalf("❌ Jadwal cleanup token tidak valid: %v", err)
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, routes.Deps{
		Policy:    policy,
		Notifier:  notify.New(configs.SendgridKey(), configs.MailFrom(), configs.AppName()),
		JWTSecret: configs.JWTSecret,
		Tokens:    tokens,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.Port()

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	<-cleanup.Stop().Done()

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
