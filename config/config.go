// Package config loads service settings from .env and the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"avatar-progression/progression"

	"github.com/joho/godotenv"
)

type R2 struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	CDNBaseURL      string
}

// Enabled reports whether enough is set to talk to R2.
func (r R2) Enabled() bool {
	return r.AccountID != "" && r.Bucket != ""
}

type Config struct {
	Port              string
	DatabaseURL       string
	ServiceToken      string
	AllowedOrigins    []string
	RankingGeneration string

	IndexerURL      string
	TokenServiceURL string

	MigrationSweepInterval time.Duration
	SupplyReportInterval   time.Duration

	R2          R2
	Collections progression.Collections
	AssetMints  map[progression.AssetID]string
}

// Load reads .env if present, then the environment. Missing required keys
// are reported together.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from any lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:              get("PORT", "5200"),
		DatabaseURL:       get("DATABASE_URL", ""),
		ServiceToken:      get("GAME_SERVICE_TOKEN", ""),
		RankingGeneration: get("RANKING_GENERATION", "v2"),
		IndexerURL:        get("INDEXER_URL", ""),
		TokenServiceURL:   get("TOKEN_SERVICE_URL", ""),
		R2: R2{
			AccountID:       get("CLOUDFLARE_ACCOUNT_ID", ""),
			AccessKeyID:     get("R2_ACCESS_KEY_ID", ""),
			AccessKeySecret: get("R2_ACCESS_KEY_SECRET", ""),
			Bucket:          get("R2_BUCKET_NAME", ""),
			CDNBaseURL:      get("CDN_BASE_URL", ""),
		},
		Collections: progression.Collections{
			Avatar:   get("AVATAR_COLLECTION", ""),
			Skin:     get("SKIN_COLLECTION", ""),
			Clothing: get("CLOTHING_COLLECTION", ""),
			Eyes:     get("EYES_COLLECTION", ""),
			Hat:      get("HAT_COLLECTION", ""),
			Mouth:    get("MOUTH_COLLECTION", ""),
		},
		AssetMints: map[progression.AssetID]string{
			progression.AssetIDCard:        get("ID_CARD_MINT", ""),
			progression.AssetBadgeBronze:   get("BADGE_BRONZE_MINT", ""),
			progression.AssetBadgeSilver:   get("BADGE_SILVER_MINT", ""),
			progression.AssetBadgeGold:     get("BADGE_GOLD_MINT", ""),
			progression.AssetBadgePlatinum: get("BADGE_PLATINUM_MINT", ""),
			progression.AssetBadgeDiamond:  get("BADGE_DIAMOND_MINT", ""),
			progression.AssetScanner:       get("SCANNER_MINT", ""),
		},
	}
	if cfg.R2.CDNBaseURL == "" && cfg.R2.AccountID != "" {
		cfg.R2.CDNBaseURL = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2.AccountID)
	}

	for _, origin := range strings.Split(get("ALLOWED_ORIGINS", "http://localhost:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	var err error
	if cfg.MigrationSweepInterval, err = time.ParseDuration(get("MIGRATION_SWEEP_INTERVAL", "10m")); err != nil {
		return nil, fmt.Errorf("invalid MIGRATION_SWEEP_INTERVAL: %w", err)
	}
	if cfg.SupplyReportInterval, err = time.ParseDuration(get("SUPPLY_REPORT_INTERVAL", "1h")); err != nil {
		return nil, fmt.Errorf("invalid SUPPLY_REPORT_INTERVAL: %w", err)
	}

	var missing []string
	for key, v := range map[string]string{
		"DATABASE_URL":       cfg.DatabaseURL,
		"GAME_SERVICE_TOKEN": cfg.ServiceToken,
		"INDEXER_URL":        cfg.IndexerURL,
		"TOKEN_SERVICE_URL":  cfg.TokenServiceURL,
	} {
		if v == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

