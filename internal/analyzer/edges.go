package analyzer

import (
	"image"
	"math"

	"gonum.org/v1/gonum/floats"
)

// EdgePair holds the detected column range of the spectrum band.
// Left and Right are column indices into the source image.
type EdgePair struct {
	Left  int
	Right int
}

// Width returns the spectrum width in pixels.
func (e EdgePair) Width() int {
	return e.Right - e.Left
}

// EdgeDetector locates the left and right boundaries of a horizontal
// color band by finding the strongest peaks in the column-wise
// luminance gradient.
type EdgeDetector struct {
	PeakHeight   float64 // Minimum normalized edge strength for a peak
	PeakDistance int     // Minimum spacing between peaks in columns
	RightCutoff  float64 // Fraction of width eligible for the right edge
}

// NewEdgeDetector creates an edge detector with default settings.
func NewEdgeDetector() *EdgeDetector {
	return &EdgeDetector{
		PeakHeight:   0.1,
		PeakDistance: 20,
		RightCutoff:  0.9, // Rightmost 10% never hosts an edge
	}
}

// Detect computes the luminance profile of img, finds gradient peaks and
// returns the two strongest as the spectrum edges. With fewer than two
// usable peaks it falls back to the fixed quarter/three-quarter columns.
// Pure computation; img is never modified.
func (d *EdgeDetector) Detect(img image.Image) EdgePair {
	width := img.Bounds().Dx()
	cutoff := int(float64(width) * d.RightCutoff)

	profile := LuminanceProfile(img)
	normalizeProfile(profile)
	strength := EdgeStrength(profile)

	// Margins and watermarks on the right side produce false edges,
	// so that region is excluded outright.
	for x := cutoff; x < len(strength); x++ {
		strength[x] = 0
	}

	peaks := FindPeaks(strength, d.PeakHeight, d.PeakDistance)
	if len(peaks) < 2 {
		return EdgePair{
			Left:  width / 4,
			Right: min(3*width/4, cutoff),
		}
	}

	a, b := strongestTwo(strength, peaks)
	left, right := min(a, b), max(a, b)
	if right > cutoff {
		right = cutoff
	}
	return EdgePair{Left: left, Right: right}
}

// LuminanceProfile returns one brightness value per image column: the
// mean over all rows of the mean of the three color channels, in 0..255.
func LuminanceProfile(img image.Image) []float64 {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	profile := make([]float64, width)
	if height == 0 {
		return profile
	}

	for x := 0; x < width; x++ {
		var sum float64
		for y := 0; y < height; y++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			sum += float64(r>>8) + float64(g>>8) + float64(b>>8)
		}
		profile[x] = sum / float64(3*height)
	}
	return profile
}

// normalizeProfile rescales the profile to [0,1] in place. The epsilon in
// the denominator keeps flat images (max == min) finite.
func normalizeProfile(profile []float64) {
	if len(profile) == 0 {
		return
	}
	lo := floats.Min(profile)
	hi := floats.Max(profile)
	span := hi - lo + 1e-10
	for i, v := range profile {
		profile[i] = (v - lo) / span
	}
}

// EdgeStrength returns the absolute discrete gradient of the profile:
// central differences in the interior, one-sided at both ends.
func EdgeStrength(profile []float64) []float64 {
	n := len(profile)
	strength := make([]float64, n)
	if n < 2 {
		return strength
	}

	strength[0] = math.Abs(profile[1] - profile[0])
	strength[n-1] = math.Abs(profile[n-1] - profile[n-2])
	for i := 1; i < n-1; i++ {
		strength[i] = math.Abs((profile[i+1] - profile[i-1]) / 2)
	}
	return strength
}

// strongestTwo returns the two peak indices with the largest strength.
// Ties keep the earlier column, so results are deterministic.
func strongestTwo(strength []float64, peaks []int) (int, int) {
	first, second := -1, -1
	for _, p := range peaks {
		switch {
		case first == -1 || strength[p] > strength[first]:
			second = first
			first = p
		case second == -1 || strength[p] > strength[second]:
			second = p
		}
	}
	return first, second
}
