// Package protocol defines the JSON wire schema for a Battlesnake turn
// request/response, grounded on the teacher repo's api.go, generalized to
// carry the settings and map tag spec.md §6 names as part of a game's
// identity. The same schema doubles as the "board-literal" fixture format
// used by tests and by internal/telemetry's training export
// (original_source/src/wire_rep.rs): a board round-trips through this form
// losslessly modulo snake identity strings.
package protocol

// Point is a single grid cell in (x, y) wire coordinates, (0,0) at the
// bottom-left, matching the official Battlesnake API.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Game carries the metadata spec.md §6 lists as part of a turn request:
// id, ruleset, map tag, and the deadline-deriving timeout.
type Game struct {
	ID      string  `json:"id"`
	Ruleset Ruleset `json:"ruleset"`
	Map     string  `json:"map"`
	Source  string  `json:"source"`
	Timeout int     `json:"timeout"`
}

// Ruleset names the mode a board was constructed from, plus the
// hazard-damage-per-turn setting the board simulator needs.
type Ruleset struct {
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Settings Settings `json:"settings"`
}

// Settings holds the subset of ruleset settings the core consumes.
type Settings struct {
	FoodSpawnChance     int `json:"foodSpawnChance"`
	MinimumFood         int `json:"minimumFood"`
	HazardDamagePerTurn int `json:"hazardDamagePerTurn"`
}

// Board is the wire representation of a board at one turn.
type Board struct {
	Height  int     `json:"height"`
	Width   int     `json:"width"`
	Food    []Point `json:"food"`
	Hazards []Point `json:"hazards"`
	Snakes  []Snake `json:"snakes"`
}

// Snake is the wire representation of one player's serpent.
type Snake struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Health         int            `json:"health"`
	Body           []Point        `json:"body"`
	Latency        string         `json:"latency"`
	Head           Point          `json:"head"`
	Length         int            `json:"length"`
	Shout          string         `json:"shout"`
	Customizations Customizations `json:"customizations"`
}

// Customizations are cosmetic-only and never read by the core.
type Customizations struct {
	Color string `json:"color"`
	Head  string `json:"head"`
	Tail  string `json:"tail"`
}

// GameState is a full turn request: game metadata, turn number, board, and
// which snake is "you". This is also the board-literal format spec.md §6
// describes for tests and data transformation.
type GameState struct {
	Game  Game  `json:"game"`
	Turn  int   `json:"turn"`
	Board Board `json:"board"`
	You   Snake `json:"you"`
}

// MoveResponse is what the turn-decision interface emits: a move plus an
// optional shout (spec.md §6). It carries no score or search depth.
type MoveResponse struct {
	Move  string `json:"move"`
	Shout string `json:"shout,omitempty"`
}
