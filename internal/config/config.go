// Package config loads runtime configuration from the environment (and
// optionally Google Secret Manager), grounded on the teacher's main.go
// (getSecret's secretmanager.apiv1 client, the PORT/webhook-URL globals)
// and on original_source/src/minimax/eval.rs's WEIGHTS environment
// variable.
package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"

	"github.com/brensch/shapeshifter/internal/eval"
)

// Config holds everything the HTTP surface and search engine need that
// varies by deployment: evaluation weights, search time budget overrides,
// and the ambient-feature toggles (telemetry export, Discord webhook).
type Config struct {
	Port string

	// Weights blends the Early/Late evaluation phases; see internal/eval.
	Weights eval.Weights

	// FixedDepth holds the parsed FIXED_DEPTH value (0 when unset). The
	// search does not read it: iterative deepening always runs until the
	// deadline.
	FixedDepth int

	// FixedTime overrides the per-move deadline derived from the
	// incoming request's timeout field, when > 0.
	FixedTime time.Duration

	// DataSuffix, when non-empty, turns on CSV training-data export to
	// gamedata-<suffix>.csv (see internal/telemetry).
	DataSuffix string

	// TrainingBucket, when non-empty, additionally uploads that CSV to
	// a GCS bucket of this name after every write.
	TrainingBucket string

	// DiscordWebhookURL, when non-empty, turns on game-lifecycle
	// notifications (see internal/notify).
	DiscordWebhookURL string
}

// Load reads Config from the process environment. WEIGHTS is parsed with
// eval.ParseWeights if set, otherwise eval.DefaultWeights applies. A
// discordSecretName pointing at a Secret Manager secret
// ("projects/.../secrets/.../versions/latest") takes priority over
// DISCORD_WEBHOOK_URL when both are configured, since a deployed secret
// is assumed more current than a baked-in env var.
func Load(ctx context.Context, discordSecretName string) (Config, error) {
	cfg := Config{
		Port:           envOr("PORT", "8080"),
		Weights:        eval.DefaultWeights(),
		DataSuffix:     os.Getenv("DATA_SUFFIX"),
		TrainingBucket: os.Getenv("TRAINING_BUCKET"),
	}

	if raw := os.Getenv("WEIGHTS"); raw != "" {
		w, err := eval.ParseWeights(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: WEIGHTS: %w", err)
		}
		cfg.Weights = w
	}

	if raw := os.Getenv("FIXED_DEPTH"); raw != "" {
		depth, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: FIXED_DEPTH: %w", err)
		}
		cfg.FixedDepth = depth
	}

	if raw := os.Getenv("FIXED_TIME_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: FIXED_TIME_MS: %w", err)
		}
		cfg.FixedTime = time.Duration(ms) * time.Millisecond
	}

	cfg.DiscordWebhookURL = os.Getenv("DISCORD_WEBHOOK_URL")
	if discordSecretName != "" {
		secret, err := fetchSecret(ctx, discordSecretName)
		if err != nil {
			return cfg, fmt.Errorf("config: discord webhook secret: %w", err)
		}
		cfg.DiscordWebhookURL = secret
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// fetchSecret retrieves the latest version of a Secret Manager secret.
func fetchSecret(ctx context.Context, name string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("secret manager client: %w", err)
	}
	defer client.Close()

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("access secret version: %w", err)
	}
	return string(result.Payload.GetData()), nil
}
