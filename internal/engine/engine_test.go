package engine

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/Meister055/mic-spectrum-analysis/internal/annotator"
	"github.com/Meister055/mic-spectrum-analysis/internal/config"
	"github.com/Meister055/mic-spectrum-analysis/internal/source"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func writeGrayPNG(t *testing.T, path string, width, height int, gray uint8) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: gray, G: gray, B: gray, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func newTestPipeline(t *testing.T, inDir, outDir string) *Pipeline {
	t.Helper()

	cfg := config.Default()
	cfg.InputPath = inDir
	cfg.OutputDir = outDir
	cfg.Workers = 1

	src, err := source.NewFolderSource(inDir)
	if err != nil {
		t.Fatal(err)
	}
	faces, _ := annotator.LoadFaces("")
	return New(cfg, src, annotator.New(faces), quietLogger())
}

func TestPipelineRun(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	// One flat gray chart and one file that cannot be decoded.
	writeGrayPNG(t, filepath.Join(inDir, "chart.png"), 100, 50, 80)
	if err := os.WriteFile(filepath.Join(inDir, "broken.png"), []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	results, err := newTestPipeline(t, inDir, outDir).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 (broken file skipped)", len(results))
	}
	r := results[0]
	if r.Name != "chart" {
		t.Errorf("result name = %q, want chart", r.Name)
	}
	// Flat gray triggers the edge fallback: left=25, right=75.
	if r.Edges.Left != 25 || r.Edges.Right != 75 {
		t.Errorf("edges = %+v, want {25 75}", r.Edges)
	}
	if r.SpectrumWidth != 50 {
		t.Errorf("spectrum width = %d, want 50", r.SpectrumWidth)
	}
	if len(r.Boundaries) != 33 || len(r.Colors) != 32 {
		t.Errorf("got %d boundaries, %d colors, want 33, 32", len(r.Boundaries), len(r.Colors))
	}

	// Annotated image and report exist for the good file only.
	if _, err := os.Stat(filepath.Join(outDir, "chart.png")); err != nil {
		t.Errorf("annotated image missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "broken.png")); err == nil {
		t.Error("broken file produced an output image")
	}

	data, err := os.ReadFile(filepath.Join(outDir, "chart_processed.csv"))
	if err != nil {
		t.Fatalf("report missing: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 33 {
		t.Fatalf("report has %d lines, want header + 32", len(lines))
	}
	if lines[0] != "Sector #, Opinion" {
		t.Errorf("header = %q", lines[0])
	}
	// Gray 80 scales to 113, below the Sell threshold of 125.
	if lines[1] != "Sector 1, Sell" || lines[32] != "Sector 32, Sell" {
		t.Errorf("unexpected sector lines: %q ... %q", lines[1], lines[32])
	}
}

func TestPipelineEmptyFolder(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")

	results, err := newTestPipeline(t, t.TempDir(), outDir).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("got %d results, want 0", len(results))
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("output dir not created: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("empty run wrote %d files", len(entries))
	}
}

func TestPipelineReportDeterminism(t *testing.T) {
	inDir := t.TempDir()
	writeGrayPNG(t, filepath.Join(inDir, "chart.png"), 120, 30, 200)

	read := func(outDir string) string {
		t.Helper()
		if _, err := newTestPipeline(t, inDir, outDir).Run(); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		data, err := os.ReadFile(filepath.Join(outDir, "chart_processed.csv"))
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}

	first := read(filepath.Join(t.TempDir(), "a"))
	second := read(filepath.Join(t.TempDir(), "b"))
	if first != second {
		t.Error("reports differ between identical runs")
	}
}

func TestPipelineParallelMatchesSequential(t *testing.T) {
	inDir := t.TempDir()
	for _, name := range []string{"one.png", "two.png", "three.png"} {
		writeGrayPNG(t, filepath.Join(inDir, name), 80, 20, 140)
	}

	run := func(workers int) []Result {
		t.Helper()
		outDir := t.TempDir()
		cfg := config.Default()
		cfg.InputPath = inDir
		cfg.OutputDir = outDir
		cfg.Workers = workers

		src, err := source.NewFolderSource(inDir)
		if err != nil {
			t.Fatal(err)
		}
		faces, _ := annotator.LoadFaces("")
		results, err := New(cfg, src, annotator.New(faces), quietLogger()).Run()
		if err != nil {
			t.Fatal(err)
		}
		return results
	}

	seq := run(1)
	par := run(4)
	if len(seq) != 3 || len(par) != 3 {
		t.Fatalf("result counts = %d, %d, want 3, 3", len(seq), len(par))
	}
	for i := range seq {
		if seq[i].Name != par[i].Name || seq[i].Edges != par[i].Edges {
			t.Errorf("result %d differs between sequential and parallel runs", i)
		}
	}
}
