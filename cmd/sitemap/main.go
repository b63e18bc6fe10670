package main

import (
	"context"
	"flag"
	"time"

	"bereschoon_backend/internal/repository"
	"bereschoon_backend/pkg/config"
	"bereschoon_backend/pkg/database"
	"bereschoon_backend/pkg/logger"
	"bereschoon_backend/pkg/sitemap"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	outputDir := flag.String("out", cfg.Sitemap.OutputDir, "directory the sitemap files are written to")
	baseURL := flag.String("base-url", cfg.Sitemap.BaseURL, "public site URL")
	flag.Parse()

	log := logger.Must(cfg.Env)
	defer log.Sync()

	var products sitemap.ProductSource
	if cfg.Database.URL != "" {
		db, err := database.InitDB(cfg.Database.URL, log)
		if err != nil {
			log.Fatal("could not connect to database", zap.Error(err))
		}
		products = repository.NewProductRepository(db)
	} else {
		log.Warn("DATABASE_URL is not set, generating static pages only")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := sitemap.NewGenerator(*baseURL, *outputDir, products, log).Generate(ctx); err != nil {
		log.Fatal("sitemap generation failed", zap.Error(err))
	}
}
