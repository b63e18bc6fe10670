package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type SitemapGenerator interface {
	Generate(ctx context.Context) error
}

// InitSitemapCron regenerates the sitemaps on schedule. The returned
// scheduler is already started; callers stop it on shutdown.
func InitSitemapCron(schedule string, gen SitemapGenerator, log *zap.Logger) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		refreshSitemap(gen, log)
	})
	if err != nil {
		return nil, fmt.Errorf("could not initialize sitemap cron: %w", err)
	}

	c.Start()
	return c, nil
}

func refreshSitemap(gen SitemapGenerator, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log.Info("regenerating sitemaps")
	if err := gen.Generate(ctx); err != nil {
		log.Error("sitemap regeneration failed", zap.Error(err))
	}
}
