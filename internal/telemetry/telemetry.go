// Package telemetry writes the offline-trainer CSV export and, when
// configured, streams it to a Google Cloud Storage bucket. Grounded on
// original_source/src/bin/trainer.rs and src/api.rs's
// write_to_file_with_score (the score;<board-json> line format) and on the
// teacher's bucket.go for the GCS upload shape.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/brensch/shapeshifter/internal/board"
)

// Exporter appends one line per completed search to a local CSV file
// and, when a bucket is configured, uploads the file after every write.
// The zero value (Suffix == "") is a usable no-op, matching the teacher's
// pattern of ambient features that silently disable themselves when
// their environment variable is unset.
type Exporter struct {
	mu     sync.Mutex
	path   string
	bucket string
}

// New builds an Exporter writing to gamedata-<suffix>.csv. If suffix is
// empty, the returned Exporter's Record calls are no-ops. If bucket is
// non-empty, every Record call re-uploads the file to that GCS bucket
// under the same name.
func New(suffix, bucket string) *Exporter {
	if suffix == "" {
		return &Exporter{}
	}
	return &Exporter{path: fmt.Sprintf("gamedata-%s.csv", suffix), bucket: bucket}
}

// Record appends a "score;<board-json>;<trace-id>" line for one completed
// search. The trace ID is a random per-row identifier; no log line carries
// it.
func (e *Exporter) Record(ctx context.Context, score int64, b *board.Board) error {
	if e == nil || e.path == "" {
		return nil
	}

	ids := make([]string, len(b.Snakes))
	for i := range ids {
		ids[i] = fmt.Sprintf("snake%d", i)
	}
	literal, err := json.Marshal(board.ToGameState(b, ids))
	if err != nil {
		return fmt.Errorf("telemetry: marshal board: %w", err)
	}
	traceID := uuid.NewString()

	e.mu.Lock()
	defer e.mu.Unlock()

	f, err := os.OpenFile(e.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("telemetry: open %s: %w", e.path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%d;%s;%s\n", score, literal, traceID); err != nil {
		return fmt.Errorf("telemetry: write %s: %w", e.path, err)
	}

	if e.bucket == "" {
		return nil
	}
	return e.upload(ctx)
}

// upload streams the current CSV file to e.bucket under its own base name,
// the same "download then re-upload the whole object" shape the teacher's
// bucket.go uses for game GIFs.
func (e *Exporter) upload(ctx context.Context) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("telemetry: storage client: %w", err)
	}
	defer client.Close()

	f, err := os.Open(e.path)
	if err != nil {
		return fmt.Errorf("telemetry: reopen %s: %w", e.path, err)
	}
	defer f.Close()

	object := client.Bucket(e.bucket).Object(e.path)
	writer := object.NewWriter(ctx)
	if _, err := io.Copy(writer, f); err != nil {
		writer.Close()
		return fmt.Errorf("telemetry: copy to bucket: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("telemetry: close bucket writer: %w", err)
	}

	slog.Debug("training data uploaded", "bucket", e.bucket, "object", e.path)
	return nil
}
