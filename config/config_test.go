package config

import (
	"testing"
	"time"

	"avatar-progression/progression"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func required() map[string]string {
	return map[string]string{
		"DATABASE_URL":       "postgres://localhost/test",
		"GAME_SERVICE_TOKEN": "tok",
		"INDEXER_URL":        "http://indexer",
		"TOKEN_SERVICE_URL":  "http://tokens",
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(required()))
	require.NoError(t, err)

	assert.Equal(t, "5200", cfg.Port)
	assert.Equal(t, "v2", cfg.RankingGeneration)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, 10*time.Minute, cfg.MigrationSweepInterval)
	assert.Equal(t, time.Hour, cfg.SupplyReportInterval)
	assert.False(t, cfg.R2.Enabled())
	assert.Equal(t, "", cfg.AssetMints[progression.AssetScanner])
}

func TestFromEnvOverrides(t *testing.T) {
	m := required()
	m["ALLOWED_ORIGINS"] = "https://a.example, https://b.example ,"
	m["RANKING_GENERATION"] = "v1"
	m["SUPPLY_REPORT_INTERVAL"] = "15m"
	m["CLOUDFLARE_ACCOUNT_ID"] = "acct"
	m["R2_BUCKET_NAME"] = "reports"
	m["HAT_COLLECTION"] = "col-hat"
	m["BADGE_GOLD_MINT"] = "mint-gold"

	cfg, err := FromEnv(env(m))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "v1", cfg.RankingGeneration)
	assert.Equal(t, 15*time.Minute, cfg.SupplyReportInterval)
	assert.True(t, cfg.R2.Enabled())
	assert.Equal(t, "https://acct.r2.cloudflarestorage.com", cfg.R2.CDNBaseURL)
	assert.Equal(t, "col-hat", cfg.Collections.Hat)
	assert.Equal(t, "mint-gold", cfg.AssetMints[progression.AssetBadgeGold])
}

func TestFromEnvErrors(t *testing.T) {
	_, err := FromEnv(env(map[string]string{"GAME_SERVICE_TOKEN": "tok"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL, INDEXER_URL, TOKEN_SERVICE_URL")

	m := required()
	m["MIGRATION_SWEEP_INTERVAL"] = "often"
	_, err = FromEnv(env(m))
	assert.ErrorContains(t, err, "MIGRATION_SWEEP_INTERVAL")
}
