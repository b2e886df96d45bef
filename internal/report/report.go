// Package report turns sector average colors into the per-sector
// opinion report written next to each annotated image.
package report

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/Meister055/mic-spectrum-analysis/internal/analyzer"
	"github.com/Meister055/mic-spectrum-analysis/internal/config"
)

// Classifier maps a sector's hue-like value to an opinion label.
type Classifier struct {
	table config.Classification
}

// NewClassifier builds a classifier from a threshold table.
func NewClassifier(table config.Classification) Classifier {
	return Classifier{table: table}
}

// HueLike scales the red channel into the 0..360 range. This is the
// report's historical formula, not a color-space hue conversion, and the
// thresholds are calibrated against exactly this scaling.
func HueLike(c analyzer.RGB) int {
	return int(math.Round(float64(c.R) / 255 * 360))
}

// Classify is total over the whole value range: every input gets one of
// the three labels.
func (c Classifier) Classify(value int) string {
	switch {
	case value >= c.table.DontSellMin:
		return c.table.DontSellName
	case value >= c.table.SqueezeMin:
		return c.table.SqueezeName
	default:
		return c.table.SellName
	}
}

// Render serializes the report: a header line, then one line per sector
// in order. Output depends only on the sector colors and the threshold
// table, so repeated runs are byte-identical.
func (c Classifier) Render(sectors []analyzer.Sector) []byte {
	var buf bytes.Buffer
	buf.WriteString("Sector #, Opinion\n")
	for _, s := range sectors {
		fmt.Fprintf(&buf, "Sector %d, %s\n", s.Index, c.Classify(HueLike(s.Color)))
	}
	return buf.Bytes()
}

// Write renders the report and writes it to path.
func (c Classifier) Write(path string, sectors []analyzer.Sector) error {
	if err := os.WriteFile(path, c.Render(sectors), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
