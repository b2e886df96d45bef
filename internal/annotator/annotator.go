// Package annotator draws the analysis overlays onto a copy of the
// source image: title box, spectrum outline, edge lines, sector
// boundaries and sector number labels.
package annotator

import (
	"image"
	"image/color"
	"strconv"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/Meister055/mic-spectrum-analysis/internal/analyzer"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
	green = color.NRGBA{G: 255, A: 255}
)

// Annotator renders overlays with a fixed pair of faces resolved once
// per run.
type Annotator struct {
	Faces Faces
}

// New creates an annotator drawing with the given faces.
func New(faces Faces) *Annotator {
	return &Annotator{Faces: faces}
}

// Annotate draws all overlays onto a fresh copy of src and returns it.
// The source image is never modified; callers analyze src and draw on
// the returned canvas. bounds must hold the sector boundary columns,
// outer edges included.
func (a *Annotator) Annotate(src image.Image, title string, edges analyzer.EdgePair, bounds []int) *image.NRGBA {
	canvas := imaging.Clone(src)
	height := canvas.Rect.Dy()

	a.drawTitle(canvas, title)

	drawRectOutline(canvas, edges.Left, 0, edges.Right, height, green, 2)
	drawVLine(canvas, edges.Left, height, black, 3)
	drawVLine(canvas, edges.Right, height, black, 3)

	for i, x := range bounds {
		if i > 0 && i < len(bounds)-1 {
			drawVLine(canvas, x, height, black, 1)
		}
		if i < len(bounds)-1 {
			a.drawText(canvas, a.Faces.Label, strconv.Itoa(i+1), x+5, height-60)
		}
	}
	return canvas
}

// drawTitle centers the title near the top of the canvas on a solid
// white box sized to the measured text bounds with a 5px margin.
func (a *Annotator) drawTitle(canvas *image.NRGBA, title string) {
	b, _ := font.BoundString(a.Faces.Title, title)
	textW := (b.Max.X - b.Min.X).Ceil()
	textH := (b.Max.Y - b.Min.Y).Ceil()

	x := (canvas.Rect.Dx() - textW) / 2
	fillRect(canvas, x-5, 5, x+textW+5, textH+15, white)
	a.drawText(canvas, a.Faces.Title, title, x, 10)
}

// drawText draws s with its top-left corner at (x, y).
func (a *Annotator) drawText(canvas *image.NRGBA, face font.Face, s string, x, y int) {
	d := font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(black),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// drawVLine draws a vertical line of the given width centered on column
// x, spanning the full image height.
func drawVLine(canvas *image.NRGBA, x, height int, c color.NRGBA, width int) {
	for dx := x - width/2; dx < x-width/2+width; dx++ {
		for y := 0; y < height; y++ {
			canvas.Set(dx, y, c)
		}
	}
}

// drawRectOutline draws a rectangle outline of the given thickness,
// growing inward from (x0, y0)-(x1, y1).
func drawRectOutline(canvas *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA, thickness int) {
	fillRect(canvas, x0, y0, x1, y0+thickness-1, c)
	fillRect(canvas, x0, y1-thickness+1, x1, y1, c)
	fillRect(canvas, x0, y0, x0+thickness-1, y1, c)
	fillRect(canvas, x1-thickness+1, y0, x1, y1, c)
}

// fillRect fills the inclusive rectangle (x0, y0)-(x1, y1). Pixels
// outside the canvas are dropped by Set.
func fillRect(canvas *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			canvas.Set(x, y, c)
		}
	}
}
