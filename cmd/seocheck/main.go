package main

import (
	"flag"
	"os"

	"bereschoon_backend/pkg/config"
	"bereschoon_backend/pkg/logger"
	"bereschoon_backend/pkg/seo"
)

func main() {
	cfg := config.Load()
	publicDir := flag.String("dir", cfg.Sitemap.OutputDir, "public directory with robots.txt, llms.txt and the sitemaps")
	baseURL := flag.String("base-url", cfg.Sitemap.BaseURL, "canonical site URL")
	flag.Parse()

	log := logger.Must(cfg.Env)

	report := seo.NewChecker(*publicDir, *baseURL, log).Run()
	log.Sync()
	if report.Errors() > 0 {
		os.Exit(1)
	}
}
