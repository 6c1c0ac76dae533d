// Package render turns a puzzle grid snapshot into a textual or PNG
// representation. It only ever reads the grid; solving stays in hanjie.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/klofan/hanjie-server/internal/hanjie"
)

// Text renders the grid as one line per row: '#' filled, '.' empty,
// '?' undetermined.
func Text(p *hanjie.Puzzle) string {
	return p.Cells().ToString(p.Width())
}

var (
	filled    = color.RGBA{A: 255}
	empty     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	undecided = color.RGBA{R: 255, A: 255}
)

// PNG writes the grid as an image with scale x scale pixels per cell:
// black for filled, white for empty, red for cells still undetermined.
func PNG(w io.Writer, p *hanjie.Puzzle, scale int) error {
	if scale < 1 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, p.Width()*scale, p.Height()*scale))
	for y := range p.Height() {
		for x := range p.Width() {
			var c color.RGBA
			switch p.Cell(x, y) {
			case hanjie.Filled:
				c = filled
			case hanjie.Empty:
				c = empty
			default:
				c = undecided
			}
			cell := image.Rect(x*scale, y*scale, (x+1)*scale, (y+1)*scale)
			draw.Draw(img, cell, &image.Uniform{c}, image.Point{}, draw.Src)
		}
	}
	return png.Encode(w, img)
}
