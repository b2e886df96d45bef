package annotator

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

const (
	titleFontSize = 40
	labelFontSize = 12
)

// Faces holds the two type faces used for drawing: a large one for the
// image title and a small one for sector number labels.
type Faces struct {
	Title font.Face
	Label font.Face
}

// Well-known font file locations tried after the configured path.
var fontCandidates = []string{
	"arial.ttf",
	"/usr/share/fonts/truetype/msttcorefonts/Arial.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	`C:\Windows\Fonts\arial.ttf`,
}

// LoadFaces resolves the annotation faces once per run. It tries the
// configured TTF path first, then the well-known locations. When no
// usable font is found it returns the built-in bitmap face for both
// sizes together with a non-nil error describing the degradation; the
// returned Faces are always usable.
func LoadFaces(path string) (Faces, error) {
	candidates := fontCandidates
	if path != "" {
		candidates = append([]string{path}, candidates...)
	}

	for _, p := range candidates {
		faces, err := loadTTF(p)
		if err == nil {
			return faces, nil
		}
	}

	fallback := Faces{Title: basicfont.Face7x13, Label: basicfont.Face7x13}
	return fallback, fmt.Errorf("no usable TrueType font found, falling back to built-in face")
}

func loadTTF(path string) (Faces, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Faces{}, err
	}
	ft, err := opentype.Parse(data)
	if err != nil {
		return Faces{}, fmt.Errorf("parse font %s: %w", path, err)
	}

	title, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    titleFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return Faces{}, err
	}
	label, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    labelFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return Faces{}, err
	}
	return Faces{Title: title, Label: label}, nil
}
