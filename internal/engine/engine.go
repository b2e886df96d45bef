// Package engine wires the analysis stages into a per-image pipeline
// and runs it over every item of a source.
package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Meister055/mic-spectrum-analysis/internal/analyzer"
	"github.com/Meister055/mic-spectrum-analysis/internal/annotator"
	"github.com/Meister055/mic-spectrum-analysis/internal/config"
	"github.com/Meister055/mic-spectrum-analysis/internal/report"
	"github.com/Meister055/mic-spectrum-analysis/internal/source"
)

// Result is the per-image analysis record kept for the run summary.
type Result struct {
	Name          string
	Edges         analyzer.EdgePair
	Boundaries    []int
	Colors        []analyzer.RGB
	SpectrumWidth int
}

// Pipeline runs edge detection, sector averaging, annotation and
// reporting for every item of a source. Items are independent; failures
// are logged and skipped, never propagated.
type Pipeline struct {
	cfg *config.Config
	src source.Source
	det *analyzer.EdgeDetector
	ann *annotator.Annotator
	cls report.Classifier
	log *logrus.Logger
}

// New assembles a pipeline from its stages.
func New(cfg *config.Config, src source.Source, ann *annotator.Annotator, log *logrus.Logger) *Pipeline {
	return &Pipeline{
		cfg: cfg,
		src: src,
		det: analyzer.NewEdgeDetector(),
		ann: ann,
		cls: report.NewClassifier(cfg.Classification),
		log: log,
	}
}

// Run processes every source item and returns the results of the ones
// that succeeded, in source listing order. Items run on up to
// cfg.Workers goroutines; with one worker the run is fully sequential.
// The only fatal error is an unusable output directory.
func (p *Pipeline) Run() ([]Result, error) {
	if err := os.MkdirAll(p.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	count := p.src.Count()
	slots := make([]*Result, count)

	var g errgroup.Group
	g.SetLimit(p.cfg.Workers)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			name := p.src.Name(i)
			p.log.WithField("image", name).Info("processing")

			res, err := p.processOne(i, name)
			if err != nil {
				// Skip and move on; one bad file must not stop the run.
				p.log.WithField("image", name).WithError(err).Error("skipping")
				return nil
			}
			slots[i] = res
			return nil
		})
	}
	// Worker funcs absorb their own errors, so Wait cannot fail.
	_ = g.Wait()

	results := make([]Result, 0, count)
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results, nil
}

func (p *Pipeline) processOne(i int, name string) (*Result, error) {
	img, err := p.src.Load(i)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	edges := p.det.Detect(img)
	bounds := analyzer.Boundaries(edges, p.cfg.Sectors)
	sectors := analyzer.AverageSectors(img, bounds)

	canvas := p.ann.Annotate(img, name, edges, bounds)
	imgPath := filepath.Join(p.cfg.OutputDir, name+p.src.Ext(i))
	if err := imaging.Save(canvas, imgPath); err != nil {
		return nil, fmt.Errorf("save annotated image: %w", err)
	}
	p.log.WithField("output", imgPath).Debug("annotated image saved")

	csvPath := filepath.Join(p.cfg.OutputDir, name+"_processed.csv")
	if err := p.cls.Write(csvPath, sectors); err != nil {
		return nil, err
	}

	colors := make([]analyzer.RGB, len(sectors))
	for j, s := range sectors {
		colors[j] = s.Color
	}
	return &Result{
		Name:          name,
		Edges:         edges,
		Boundaries:    bounds,
		Colors:        colors,
		SpectrumWidth: edges.Width(),
	}, nil
}
