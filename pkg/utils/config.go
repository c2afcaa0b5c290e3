// Package utils loads process configuration. Settings come from the
// environment (optionally seeded from a .env file, which is how the
// front-end tooling ships its secrets) and are threaded explicitly into
// the pieces that need them — nothing reads the environment at use time.
package utils

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Content provider
	NotionAPIKey string `envconfig:"NOTION_API_KEY"`
	SourceID     string `envconfig:"NOTION_SOURCE_ID"`

	// HTTP listeners
	DevAddr  string `envconfig:"BLOGHUB_DEV_ADDR" default:":5173"`
	SiteAddr string `envconfig:"BLOGHUB_SITE_ADDR" default:":8080"`

	// Built front-end root; snapshot documents live under <SiteDir>/data
	SiteDir string `envconfig:"BLOGHUB_SITE_DIR" default:"public"`

	// Default UI locale used when a request does not pick one
	DefaultLocale string `envconfig:"BLOGHUB_LOCALE" default:"zh"`

	// Admin gate for the dev server's refresh endpoint
	AdminPasswordHash string        `envconfig:"BLOGHUB_ADMIN_HASH"`
	JWTSecret         string        `envconfig:"BLOGHUB_JWT_SECRET" default:"dev-secret-change-me"`
	JWTIssuer         string        `envconfig:"BLOGHUB_JWT_ISSUER" default:"bloghub"`
	JWTTTL            time.Duration `envconfig:"BLOGHUB_JWT_TTL" default:"24h"`
}

// Load reads .env (if present) and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	return cfg, nil
}
