package analyzer

import (
	"image"

	"gonum.org/v1/gonum/stat"
)

// RGB is an 8-bit average color of a sector.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Sector is one of the equal-width vertical slices of the spectrum.
// Start and End are column indices, the range is [Start, End).
type Sector struct {
	Index int // 1-based
	Start int
	End   int
	Color RGB
}

// Boundaries computes n+1 sector boundary columns by linear interpolation
// between the two edges. Each boundary is truncated to an integer, so
// sector widths may differ by one column.
func Boundaries(edges EdgePair, n int) []int {
	step := float64(edges.Right-edges.Left) / float64(n)
	bounds := make([]int, n+1)
	for i := range bounds {
		bounds[i] = int(float64(edges.Left) + float64(i)*step)
	}
	// The last boundary is the right edge by construction; pin it so
	// float rounding can never shave a column off the final sector.
	bounds[n] = edges.Right
	return bounds
}

// AverageSectors computes the mean color of every boundary-delimited
// sector over all image rows. A zero-width sector averages no pixels and
// reports black.
func AverageSectors(img image.Image, bounds []int) []Sector {
	ib := img.Bounds()
	height := ib.Dy()

	sectors := make([]Sector, 0, len(bounds)-1)
	for i := 0; i < len(bounds)-1; i++ {
		s := Sector{Index: i + 1, Start: bounds[i], End: bounds[i+1]}
		s.Color = averageBlock(img, ib.Min.X+s.Start, ib.Min.X+s.End, ib.Min.Y, ib.Min.Y+height)
		sectors = append(sectors, s)
	}
	return sectors
}

func averageBlock(img image.Image, x0, x1, y0, y1 int) RGB {
	count := (x1 - x0) * (y1 - y0)
	if count <= 0 {
		return RGB{}
	}

	rs := make([]float64, 0, count)
	gs := make([]float64, 0, count)
	bs := make([]float64, 0, count)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			rs = append(rs, float64(r>>8))
			gs = append(gs, float64(g>>8))
			bs = append(bs, float64(b>>8))
		}
	}

	return RGB{
		R: uint8(stat.Mean(rs, nil)),
		G: uint8(stat.Mean(gs, nil)),
		B: uint8(stat.Mean(bs, nil)),
	}
}
