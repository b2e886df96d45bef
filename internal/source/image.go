package source

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Raster formats accepted from an input folder. Matching is
// case-insensitive on the extension.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".gif":  true,
}

// FolderSource lists the raster images of a directory, in directory
// listing order.
type FolderSource struct {
	paths []string
}

func NewFolderSource(dir string) (*FolderSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return &FolderSource{paths: paths}, nil
}

func (s *FolderSource) Count() int {
	return len(s.paths)
}

func (s *FolderSource) Name(i int) string {
	base := filepath.Base(s.paths[i])
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (s *FolderSource) Ext(i int) string {
	return filepath.Ext(s.paths[i])
}

func (s *FolderSource) Load(i int) (image.Image, error) {
	return imaging.Open(s.paths[i])
}

func (s *FolderSource) Close() error {
	return nil
}
