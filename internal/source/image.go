package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ivlev/canvasdeck/internal/canvas"
)

// ImageSource serves a single image or every PNG/JPEG in a directory, one per page
type ImageSource struct {
	paths []string
}

func NewImageSource(path string) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && IsImage(entry.Name()) {
				paths = append(paths, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(paths)
	} else {
		paths = []string{path}
	}

	return &ImageSource{paths: paths}, nil
}

// IsImage reports whether the file name has a supported image extension
func IsImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

func (s *ImageSource) PageCount() int {
	return len(s.paths)
}

// PageSize reads the image header without decoding pixels
func (s *ImageSource) PageSize(page int) (canvas.Size, error) {
	if err := checkPage(page, len(s.paths)); err != nil {
		return canvas.Size{}, err
	}
	f, err := os.Open(s.paths[page])
	if err != nil {
		return canvas.Size{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return canvas.Size{}, fmt.Errorf("decode %s: %w", s.paths[page], err)
	}
	return canvas.Size{W: float64(cfg.Width), H: float64(cfg.Height)}, nil
}

// RenderPage decodes the image; dpi is ignored for raster files
func (s *ImageSource) RenderPage(page int, dpi int) (image.Image, error) {
	if err := checkPage(page, len(s.paths)); err != nil {
		return nil, err
	}
	f, err := os.Open(s.paths[page])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.paths[page], err)
	}
	return img, nil
}

func (s *ImageSource) Close() error {
	return nil
}
