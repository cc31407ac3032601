package visualize

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	gifcodec "image/gif"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/brensch/shapeshifter/internal/board"
)

const cellSize = 6

// RenderGIF renders a sequence of board positions (e.g. a training export
// or a failing property test's move-by-move trace) to an animated GIF,
// one frame per position, grounded on the teacher's renderer.go
// (renderBoardToImage/renderGameToGIF) with the Tidbyt-device framing and
// live-websocket frame collection dropped — this only ever renders
// board.Board values already in hand.
func RenderGIF(w io.Writer, frames []*board.Board, delay100ths int) error {
	if len(frames) == 0 {
		return fmt.Errorf("visualize: no frames to render")
	}

	anim := gifcodec.GIF{}
	width, height := frames[0].Width, frames[0].Height

	for _, b := range frames {
		img, palette := renderFrame(b, width, height)
		addLabel(img, 2, 10, fmt.Sprintf("T%d", b.Turn), color.RGBA{255, 255, 255, 255})
		paletted := image.NewPaletted(img.Bounds(), palette)
		draw.Draw(paletted, paletted.Bounds(), img, image.Point{}, draw.Src)
		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, delay100ths)
	}

	return gifcodec.EncodeAll(w, &anim)
}

func renderFrame(b *board.Board, width, height int) (*image.RGBA, []color.Color) {
	canvasW, canvasH := width*cellSize, height*cellSize
	img := image.NewRGBA(image.Rect(0, 0, canvasW, canvasH))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 255}}, image.Point{}, draw.Src)

	palette := []color.Color{
		color.RGBA{0, 0, 0, 255},
		color.RGBA{255, 255, 255, 255},
		color.RGBA{0, 255, 0, 255},
		color.RGBA{100, 100, 100, 255},
	}

	for cell := 0; cell < b.Width*b.Height; cell++ {
		if b.HazardMask.Get(cell) {
			drawCell(img, cellCoord(b, cell, width, height), color.RGBA{60, 40, 0, 255})
		}
	}
	for cell := 0; cell < b.Width*b.Height; cell++ {
		if b.Food.Get(cell) {
			drawCell(img, cellCoord(b, cell, width, height), color.RGBA{0, 255, 0, 255})
		}
	}

	for i, sn := range b.Snakes {
		if !sn.Alive() {
			continue
		}
		body := colorForIndex(i)
		head := lighten(body)
		palette = append(palette, body, head)
		drawCell(img, cellCoord(b, sn.Head, width, height), head)
		drawCell(img, cellCoord(b, sn.Tail, width, height), body)
	}

	return img, palette
}

func cellCoord(b *board.Board, cell, width, height int) (int, int) {
	x, y := cell%b.Width, cell/b.Width
	flippedY := height - 1 - y
	return x * cellSize, flippedY * cellSize
}

func drawCell(img *image.RGBA, x, y int, c color.RGBA) {
	for dx := 0; dx < cellSize; dx++ {
		for dy := 0; dy < cellSize; dy++ {
			img.Set(x+dx, y+dy, c)
		}
	}
}

// addLabel draws text at (x, y) in col using the basic bitmap font,
// for annotating a frame with e.g. a turn number.
func addLabel(img *image.RGBA, x, y int, label string, col color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(label)
}

// colorForIndex deterministically derives a color for snake i so the same
// index always renders the same hue across frames and across runs.
func colorForIndex(i int) color.RGBA {
	h := fnv.New32a()
	fmt.Fprintf(h, "snake-%d", i)
	v := h.Sum32()
	return color.RGBA{uint8(v), uint8(v >> 8), uint8(v >> 16), 255}
}

func lighten(c color.RGBA) color.RGBA {
	lighten := func(v uint8) uint8 {
		if int(v)+60 > 255 {
			return 255
		}
		return v + 60
	}
	return color.RGBA{lighten(c.R), lighten(c.G), lighten(c.B), 255}
}
