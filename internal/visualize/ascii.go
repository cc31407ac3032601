// Package visualize renders board.Board positions for debugging: an ASCII
// dump for log lines and terminal output, and an annotated GIF for a
// sequence of positions (a training export or a failing property test).
// Grounded on the teacher's visuals.go (visualizeBoard) and renderer.go
// (renderBoardToImage/renderGameToGIF), trimmed of the Tidbyt-device and
// live-websocket-replay specifics that don't apply to a debugging aid.
package visualize

import (
	"strings"

	"github.com/brensch/shapeshifter/internal/board"
)

// ASCII renders b as a bordered grid: '.' for empty, 'x' for the border,
// 'o' for every body segment, an uppercase letter for each snake's head
// ('A' for snake 0, 'B' for snake 1, ...),
// 'F' for food, and '#' for hazard-only cells.
func ASCII(b *board.Board) string {
	var sb strings.Builder

	width, height := b.Width+2, b.Height+2
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				grid[y][x] = 'x'
			} else {
				grid[y][x] = '.'
			}
		}
	}

	// Row 0 of the grid is the top border; board row (Height-1) is drawn
	// first so the ASCII picture reads top-to-bottom like the wire
	// format's (0,0)-at-bottom-left convention flipped for a terminal.
	put := func(cell int, r rune) {
		x, y := cell%b.Width, cell/b.Width
		flippedY := b.Height - 1 - y
		grid[flippedY+1][x+1] = r
	}

	for cell := 0; cell < b.Width*b.Height; cell++ {
		if b.HazardMask.Get(cell) {
			put(cell, '#')
		}
	}
	for cell := 0; cell < b.Width*b.Height; cell++ {
		if b.Food.Get(cell) {
			put(cell, 'F')
		}
	}
	// Body occupancy is a shared bitset across all snakes, so every
	// occupied cell gets a single generic body marker; each alive
	// snake's head is then overlaid with a per-snake letter so heads
	// remain distinguishable even where bodies overlap is impossible
	// (no two live snakes ever share a cell) but indices still matter
	// for reading which snake is which.
	for cell := 0; cell < b.Width*b.Height; cell++ {
		if b.Bodies[0].Get(cell) {
			put(cell, 'o')
		}
	}
	for i, sn := range b.Snakes {
		if !sn.Alive() {
			continue
		}
		put(sn.Head, rune('A'+i%26))
	}

	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
