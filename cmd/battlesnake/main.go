// Command battlesnake serves the Battlesnake HTTP API: /, /start, /move,
// /end. Grounded on the teacher's main.go (handler wiring, the per-game
// deadline derived from the request timeout, the Discord startup/shutdown
// pings) generalized to the engine built across internal/board,
// internal/search, and internal/mcts instead of the teacher's single
// concurrent-MCTS decision engine.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/brensch/shapeshifter/internal/board"
	"github.com/brensch/shapeshifter/internal/config"
	"github.com/brensch/shapeshifter/internal/logging"
	"github.com/brensch/shapeshifter/internal/mcts"
	"github.com/brensch/shapeshifter/internal/notify"
	"github.com/brensch/shapeshifter/internal/protocol"
	"github.com/brensch/shapeshifter/internal/search"
	"github.com/brensch/shapeshifter/internal/telemetry"
	"github.com/brensch/shapeshifter/internal/ttable"
)

// requestSafetyMargin is subtracted from the request's declared timeout
// before deriving a search deadline, the same 100ms safety margin the
// teacher's handleMove reserves for response marshaling and network
// latency.
const requestSafetyMargin = 100 * time.Millisecond

type server struct {
	cfg       config.Config
	tables    *ttable.Registry
	histories *search.Registry
	webhook   *notify.Webhook
	exporter  *telemetry.Exporter
}

func main() {
	slog.SetDefault(slog.New(logging.New(os.Stdout, slog.LevelInfo)))

	discordSecret := os.Getenv("DISCORD_WEBHOOK_SECRET_NAME")
	cfg, err := config.Load(context.Background(), discordSecret)
	if err != nil {
		slog.Error("failed to load configuration", "error", err.Error())
		os.Exit(1)
	}

	s := &server{
		cfg:       cfg,
		tables:    ttable.NewRegistry(),
		histories: search.NewRegistry(),
		webhook:   notify.New(cfg.DiscordWebhookURL),
		exporter:  telemetry.New(cfg.DataSuffix, cfg.TrainingBucket),
	}

	s.webhook.Send("shapeshifter starting up")

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/start", s.handleStart)
	mux.HandleFunc("/move", s.handleMove)
	mux.HandleFunc("/end", s.handleEnd)

	slog.Info("starting battlesnake server", "port", cfg.Port)
	err = http.ListenAndServe(":"+cfg.Port, mux)
	s.webhook.Send("shapeshifter shutting down")
	log.Fatal(err)
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"apiversion": "1",
		"author":     "shapeshifter",
		"color":      "#2e2e2e",
		"head":       "default",
		"tail":       "default",
		"version":    "1.0.0",
	})
}

func (s *server) handleStart(w http.ResponseWriter, r *http.Request) {
	var state protocol.GameState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	slog.Info("game started", "game_id", state.Game.ID, "snakes", len(state.Board.Snakes))
	s.webhook.Send(fmt.Sprintf("game %s started with %d snakes", state.Game.ID, len(state.Board.Snakes)))
	writeJSON(w, map[string]string{})
}

func (s *server) handleMove(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var state protocol.GameState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b := board.FromGameState(state)

	deadline := time.Now().Add(time.Duration(state.Game.Timeout)*time.Millisecond - requestSafetyMargin)
	if s.cfg.FixedTime > 0 {
		deadline = time.Now().Add(s.cfg.FixedTime)
	}

	tt := s.tables.Get(state.Game.ID)
	searcher := s.histories.Get(state.Game.ID, tt, b.Width*b.Height, s.cfg.Weights)

	move, depth, score := searcher.Decide(b, deadline)

	if mcts.ShouldFallback(b, score) {
		workers := runtime.NumCPU()
		fallbackMove, _ := mcts.Search(b, s.cfg.Weights, deadline, workers)
		slog.Info("mcts fallback triggered", "game_id", state.Game.ID, "primary_move", move.String(), "fallback_move", fallbackMove.String())
		move = fallbackMove
	}

	response := protocol.MoveResponse{Move: move.String()}
	writeJSON(w, response)

	if err := s.exporter.Record(r.Context(), score, b); err != nil {
		slog.Error("failed to record training data", "error", err.Error())
	}

	slog.Info("move processed",
		"game_id", state.Game.ID,
		"move", move.String(),
		"depth", depth,
		"score", score,
		"nodes", searcher.Nodes(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (s *server) handleEnd(w http.ResponseWriter, r *http.Request) {
	var state protocol.GameState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.tables.Drop(state.Game.ID)
	s.histories.Drop(state.Game.ID)

	b := board.FromGameState(state)
	outcome, reason := notify.DescribeOutcome(b)
	slog.Info("game ended", "game_id", state.Game.ID, "turn", state.Turn, "outcome", outcome.String())

	s.webhook.SendOutcome(state.Game.ID, outcome, reason, state.Turn)
	writeJSON(w, map[string]string{})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write json response", "error", err.Error())
	}
}
