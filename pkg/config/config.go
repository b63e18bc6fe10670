package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Webhook  WebhookConfig
	Auth     AuthConfig
	Costs    CostConfig
	Sitemap  SitemapConfig
	Seed     SeedConfig
}

type ServerConfig struct {
	Port        string
	BodyLimitMB int
}

type DatabaseConfig struct {
	URL string
}

// StorageConfig points at the Cloudflare R2 bucket holding uploaded photos.
type StorageConfig struct {
	AccountID     string
	AccessKey     string
	SecretKey     string
	Bucket        string
	Endpoint      string
	PublicBaseURL string
}

type WebhookConfig struct {
	URL            string
	TimeoutSeconds int
}

type AuthConfig struct {
	JWTSecret string
}

type CostConfig struct {
	PerSubmission float64
}

type SitemapConfig struct {
	BaseURL   string
	OutputDir string
	Schedule  string
}

type SeedConfig struct {
	AdminUserIDs []string
}

func Load() *Config {
	godotenv.Load() // .env is optional outside local development

	return &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:        getEnv("PORT", "3000"),
			BodyLimitMB: getEnvInt("BODY_LIMIT_MB", 12),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Storage: StorageConfig{
			AccountID:     getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:     getEnv("R2_ACCESS_KEY", ""),
			SecretKey:     getEnv("R2_SECRET_KEY", ""),
			Bucket:        getEnv("R2_BUCKET_NAME", "driveway-photos"),
			Endpoint:      getEnv("R2_ENDPOINT", ""),
			PublicBaseURL: getEnv("R2_PUBLIC_BASE_URL", ""),
		},
		Webhook: WebhookConfig{
			URL:            getEnv("N8N_WEBHOOK_URL", ""),
			TimeoutSeconds: getEnvInt("N8N_WEBHOOK_TIMEOUT_SECONDS", 0),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Costs: CostConfig{
			PerSubmission: getEnvFloat("COST_PER_SUBMISSION", 0.15),
		},
		Sitemap: SitemapConfig{
			BaseURL:   strings.TrimRight(getEnv("SITE_BASE_URL", "https://bereschoon.nl"), "/"),
			OutputDir: getEnv("SITEMAP_OUTPUT_DIR", "./public"),
			Schedule:  getEnv("SITEMAP_CRON", "0 4 * * *"),
		},
		Seed: SeedConfig{
			AdminUserIDs: getEnvList("SEED_ADMIN_USER_IDS"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
