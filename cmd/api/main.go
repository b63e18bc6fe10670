package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bereschoon_backend/internal/controller"
	"bereschoon_backend/internal/model"
	"bereschoon_backend/internal/repository"
	"bereschoon_backend/internal/server"
	"bereschoon_backend/pkg/config"
	"bereschoon_backend/pkg/cron"
	"bereschoon_backend/pkg/database"
	"bereschoon_backend/pkg/logger"
	"bereschoon_backend/pkg/seed"
	"bereschoon_backend/pkg/sitemap"
	"bereschoon_backend/pkg/utils/storage"
	"bereschoon_backend/pkg/webhook"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	log := logger.Must(cfg.Env)
	defer log.Sync()

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	if cfg.Auth.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set, admin routes will reject every request")
	}

	db, err := database.InitDB(cfg.Database.URL, log)
	if err != nil {
		log.Fatal("could not connect to database", zap.Error(err))
	}
	err = database.MigrateDatabase(db, log,
		&model.Submission{},
		&model.GenerationCost{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderTrackingHistory{},
		&model.AdminUser{},
	)
	if err != nil {
		log.Warn("migration warning", zap.Error(err))
	}
	seed.SeedAdminUsers(db, cfg.Seed.AdminUserIDs, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	photos, err := storage.NewR2Store(ctx, storage.R2Config{
		AccountID:     cfg.Storage.AccountID,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		Bucket:        cfg.Storage.Bucket,
		Endpoint:      cfg.Storage.Endpoint,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		log.Fatal("could not initialize photo storage", zap.Error(err))
	}

	if cfg.Webhook.URL == "" {
		log.Warn("N8N_WEBHOOK_URL is not set, submissions will not be forwarded")
	}
	notifier := webhook.NewHTTPNotifier(cfg.Webhook.URL, time.Duration(cfg.Webhook.TimeoutSeconds)*time.Second)

	orders := repository.NewOrderRepository(db)

	app := server.New(server.Deps{
		Submissions: controller.NewSubmissionController(
			repository.NewSubmissionRepository(db),
			repository.NewCostLedger(db),
			photos,
			notifier,
			cfg.Costs.PerSubmission,
			log,
		),
		Tracking:    controller.NewTrackingController(orders, log),
		Track:       controller.NewTrackController(orders, log),
		Admins:      repository.NewAdminRepository(db),
		JWTSecret:   []byte(cfg.Auth.JWTSecret),
		BodyLimitMB: cfg.Server.BodyLimitMB,
		AccessLog:   !cfg.IsProduction(),
		Log:         log,
	})

	generator := sitemap.NewGenerator(cfg.Sitemap.BaseURL, cfg.Sitemap.OutputDir, repository.NewProductRepository(db), log)
	sitemapCron, err := cron.InitSitemapCron(cfg.Sitemap.Schedule, generator, log)
	if err != nil {
		log.Fatal("could not schedule sitemap refresh", zap.Error(err))
	}
	defer sitemapCron.Stop()

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	log.Info("server is running", zap.String("port", cfg.Server.Port))
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
