// Command visualize renders a board-literal JSON file (a single
// protocol.GameState or a JSON array of them, as internal/telemetry's CSV
// export embeds) to an ASCII dump or an animated GIF, for inspecting a
// training export or a failing property test by eye.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/brensch/shapeshifter/internal/board"
	"github.com/brensch/shapeshifter/internal/protocol"
	"github.com/brensch/shapeshifter/internal/visualize"
)

func main() {
	in := flag.String("in", "", "path to a JSON game-state or array of game-states")
	out := flag.String("out", "", "path to write an animated GIF; if empty, prints ASCII to stdout")
	delay := flag.Int("delay", 15, "GIF frame delay in 1/100ths of a second")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: visualize -in states.json [-out out.gif]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read input:", err)
		os.Exit(1)
	}

	states, err := decodeStates(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, "decode input:", err)
		os.Exit(1)
	}

	boards := make([]*board.Board, len(states))
	for i, s := range states {
		boards[i] = board.FromGameState(s)
	}

	if *out == "" {
		for _, b := range boards {
			fmt.Println(visualize.ASCII(b))
		}
		return
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create output:", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := visualize.RenderGIF(f, boards, *delay); err != nil {
		fmt.Fprintln(os.Stderr, "render gif:", err)
		os.Exit(1)
	}
}

func decodeStates(data []byte) ([]protocol.GameState, error) {
	var many []protocol.GameState
	if err := json.Unmarshal(data, &many); err == nil {
		return many, nil
	}
	var one protocol.GameState
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, err
	}
	return []protocol.GameState{one}, nil
}
