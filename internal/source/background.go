package source

import (
	"fmt"
	"image"
	"path/filepath"
	"strconv"
	"strings"
)

// ParseSpec splits a background spec "deck.pdf#3" into path and zero-based page index.
// Without a fragment the first page is used.
func ParseSpec(spec string) (string, int, error) {
	path, frag, found := strings.Cut(spec, "#")
	if path == "" {
		return "", 0, fmt.Errorf("empty background path")
	}
	if !found {
		return path, 0, nil
	}
	page, err := strconv.Atoi(frag)
	if err != nil || page < 1 {
		return "", 0, fmt.Errorf("invalid page %q in background %q", frag, spec)
	}
	return path, page - 1, nil
}

// Open picks a source implementation by file extension
func Open(path string) (Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewPDFSource(path)
	}
	return NewImageSource(path)
}

// LoadBackground resolves a spec relative to baseDir and renders the selected page
func LoadBackground(spec, baseDir string, dpi int) (image.Image, error) {
	path, page, err := ParseSpec(spec)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}

	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	img, err := src.RenderPage(page, dpi)
	if err != nil {
		return nil, fmt.Errorf("background %q: %w", spec, err)
	}
	return img, nil
}
