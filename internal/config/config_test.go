package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_PASS", "secret")
	t.Setenv("TIMEZONE", "Asia/Jakarta")
	t.Setenv("JWT_TTL_MINUTES", "30")
	t.Setenv("RATE_LIMIT_SUBMISSION", "45s")
	t.Setenv("SEED_SAMPLE_DATA", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 45*time.Second, cfg.RateLimitSubmission)
	assert.True(t, cfg.SeedSampleData)
	assert.Equal(t, "Asia/Jakarta", cfg.Timezone.String())
	assert.Contains(t, cfg.DSN(), "password=secret")
	assert.Contains(t, cfg.DSN(), "TimeZone=Asia/Jakarta")
}

func TestDatabaseURLOverridesParts(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/magang")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/magang", cfg.DSN())
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("RATE_LIMIT_SUBMISSION", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "RATE_LIMIT_SUBMISSION")
}
