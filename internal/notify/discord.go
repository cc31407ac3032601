// Package notify sends game lifecycle updates to a Discord webhook,
// grounded on the teacher's discord.go (Embed/WebhookPayload/
// sendDiscordWebhook) and outcome.go (GameOutcome/describeGameOutcome).
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Embed is a Discord rich embed, the subset of fields the service fills
// in for a game-outcome notification.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

// EmbedField is one name/value row in an Embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type webhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Outcome classifies how a finished game ended, for embed coloring.
type Outcome int

const (
	Win Outcome = iota
	Draw
	Loss
)

// Color returns the Discord embed color conventionally used for an
// outcome: green for a win, yellow for a draw, red for a loss.
func (o Outcome) Color() int {
	switch o {
	case Win:
		return 0x00FF00
	case Draw:
		return 0xFFFF00
	case Loss:
		return 0xFF0000
	default:
		return 0x0099FF
	}
}

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "loss"
	}
}

// Webhook posts messages and embeds to a single Discord webhook URL. The
// zero value is a usable no-op: URL == "" silently skips the send, so a
// deployment that never retrieved a webhook secret (see internal/config)
// just runs quietly instead of failing every game lifecycle call.
type Webhook struct {
	URL    string
	Client *http.Client
}

// New builds a Webhook posting to url with a bounded-timeout client.
func New(url string) *Webhook {
	return &Webhook{URL: url, Client: &http.Client{Timeout: 10 * time.Second}}
}

// Send posts a plain-content message.
func (w *Webhook) Send(message string) {
	w.send(webhookPayload{Content: message})
}

// SendOutcome posts a colored embed summarizing a finished game.
func (w *Webhook) SendOutcome(gameID string, outcome Outcome, reason string, turns int) {
	w.send(webhookPayload{
		Embeds: []Embed{{
			Title:       fmt.Sprintf("Game %s: %s", gameID, outcome),
			Description: reason,
			Color:       outcome.Color(),
			Timestamp:   time.Now().Format(time.RFC3339Nano),
			Fields: []EmbedField{
				{Name: "Turns", Value: fmt.Sprintf("%d", turns), Inline: true},
			},
		}},
	})
}

func (w *Webhook) send(payload webhookPayload) {
	if w == nil || w.URL == "" {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal discord payload", "error", err.Error())
		return
	}

	client := w.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Post(w.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		slog.Error("failed to send discord webhook", "error", err.Error())
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		slog.Error("discord webhook rejected", "status", resp.StatusCode)
		return
	}
	slog.Debug("discord message sent")
}
