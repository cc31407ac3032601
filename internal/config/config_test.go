package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "WEIGHTS", "FIXED_DEPTH", "FIXED_TIME_MS", "DATA_SUFFIX", "TRAINING_BUCKET", "DISCORD_WEBHOOK_URL"} {
		assert.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(context.Background(), "")
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 0, cfg.FixedDepth)
	assert.Equal(t, time.Duration(0), cfg.FixedTime)
}

func TestLoadParsesOverrides(t *testing.T) {
	clearEnv(t)
	os.Setenv("PORT", "9090")
	os.Setenv("FIXED_DEPTH", "6")
	os.Setenv("FIXED_TIME_MS", "250")
	os.Setenv("DATA_SUFFIX", "run1")
	defer clearEnv(t)

	cfg, err := Load(context.Background(), "")
	assert.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 6, cfg.FixedDepth)
	assert.Equal(t, 250*time.Millisecond, cfg.FixedTime)
	assert.Equal(t, "run1", cfg.DataSuffix)
}

func TestLoadRejectsMalformedWeights(t *testing.T) {
	clearEnv(t)
	os.Setenv("WEIGHTS", "1;2;3")
	defer clearEnv(t)

	_, err := Load(context.Background(), "")
	assert.Error(t, err)
}
