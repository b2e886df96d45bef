// Package source enumerates the input items of a run: the raster
// images of a folder, or the rendered pages of a PDF document.
package source

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Source is a fixed, ordered set of input items. Load may be called
// concurrently for different indices.
type Source interface {
	Count() int
	// Name returns the item's file stem, used as the image title and
	// as the output/report base name.
	Name(i int) string
	// Ext returns the output image extension, leading dot included.
	Ext(i int) string
	Load(i int) (image.Image, error)
	Close() error
}

// Open picks a source for path: a .pdf file yields one item per page,
// anything else must be a folder of raster images.
func Open(path string, dpi int) (Source, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return NewFolderSource(path)
	}
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return NewPDFSource(path, dpi)
	}
	return nil, fmt.Errorf("input must be a folder of images or a PDF file: %s", path)
}

// PDFSource treats every page of a PDF document as one spectrum chart,
// rendered at a fixed DPI. Pages are named <stem>_page<N>.
type PDFSource struct {
	doc  *fitz.Document
	path string
	stem string
	dpi  int
}

func NewPDFSource(path string, dpi int) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(path)
	return &PDFSource{
		doc:  doc,
		path: path,
		stem: strings.TrimSuffix(base, filepath.Ext(base)),
		dpi:  dpi,
	}, nil
}

func (s *PDFSource) Count() int {
	return s.doc.NumPage()
}

func (s *PDFSource) Name(i int) string {
	return fmt.Sprintf("%s_page%d", s.stem, i+1)
}

func (s *PDFSource) Ext(i int) string {
	return ".png"
}

// Load reopens the document per call; fitz handles are not safe for
// concurrent rendering.
func (s *PDFSource) Load(i int) (image.Image, error) {
	doc, err := fitz.New(s.path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()
	return doc.ImageDPI(i, float64(s.dpi))
}

func (s *PDFSource) Close() error {
	return s.doc.Close()
}
