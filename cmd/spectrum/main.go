package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Meister055/mic-spectrum-analysis/internal/annotator"
	"github.com/Meister055/mic-spectrum-analysis/internal/config"
	"github.com/Meister055/mic-spectrum-analysis/internal/engine"
	"github.com/Meister055/mic-spectrum-analysis/internal/source"
	"github.com/Meister055/mic-spectrum-analysis/internal/system"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	configPtr := flag.String("config", "", "YAML config file overlaying the defaults")
	inputPtr := flag.String("input", "", "Input folder of images, or a PDF file (prompted for when empty)")
	outputPtr := flag.String("output", "", "Output folder (prompted for when empty)")
	sectorsPtr := flag.Int("sectors", 0, "Sectors per spectrum (default 32)")
	workersPtr := flag.Int("workers", 0, "Parallel workers (default: one per physical core, 1 = sequential)")
	dpiPtr := flag.Int("dpi", 0, "Rendering DPI for PDF input (default 300)")
	fontPtr := flag.String("font", "", "TTF font for annotations (falls back to a built-in face)")
	verbosePtr := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	if *verbosePtr {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg := config.Default()
	if *configPtr != "" {
		if err := cfg.LoadFile(*configPtr); err != nil {
			log.Fatalf("config: %v", err)
		}
	}
	if *inputPtr != "" {
		cfg.InputPath = *inputPtr
	}
	if *outputPtr != "" {
		cfg.OutputDir = *outputPtr
	}
	if *sectorsPtr > 0 {
		cfg.Sectors = *sectorsPtr
	}
	if *workersPtr > 0 {
		cfg.Workers = *workersPtr
	}
	if *dpiPtr > 0 {
		cfg.DPI = *dpiPtr
	}
	if *fontPtr != "" {
		cfg.FontPath = *fontPtr
	}

	reader := bufio.NewReader(os.Stdin)
	if cfg.InputPath == "" {
		cfg.InputPath = prompt(reader, "Enter input folder path: ")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = prompt(reader, "Enter output folder path: ")
	}

	if cfg.Workers < 1 {
		cfg.Workers = system.DefaultWorkers()
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	system.InitResourceLimits(log)
	log.Debug(system.MemorySummary())

	faces, err := annotator.LoadFaces(cfg.FontPath)
	if err != nil {
		log.WithError(err).Warn("annotation font degraded")
	}

	src, err := source.Open(cfg.InputPath, cfg.DPI)
	if err != nil {
		log.Fatalf("open input: %v", err)
	}
	defer src.Close()

	fmt.Println("Processing spectrum images...")
	results, err := engine.New(cfg, src, annotator.New(faces), log).Run()
	if err != nil {
		log.Fatalf("run: %v", err)
	}

	fmt.Println("\nProcessing complete.")
	fmt.Printf("\nProcessed %d images\n", len(results))
	for _, r := range results {
		fmt.Printf("- %s: width=%dpx\n", r.Name, r.SpectrumWidth)
	}
}

func prompt(r *bufio.Reader, msg string) string {
	fmt.Print(msg)
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}
