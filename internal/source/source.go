// Package source loads slide backgrounds from PDF pages or image files.
package source

import (
	"errors"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
	"github.com/ivlev/canvasdeck/internal/canvas"
)

// ErrPageRange is returned for a 0-based page index outside the source
var ErrPageRange = errors.New("page out of range")

// Source is a paged provider of slide backgrounds
type Source interface {
	PageCount() int
	PageSize(page int) (canvas.Size, error)
	RenderPage(page int, dpi int) (image.Image, error)
	Close() error
}

func checkPage(page, count int) error {
	if page < 0 || page >= count {
		return fmt.Errorf("%w: page %d of %d", ErrPageRange, page+1, count)
	}
	return nil
}

// PDFSource renders the pages of a PDF through MuPDF
type PDFSource struct {
	doc   *fitz.Document
	path  string
	pages int
}

func NewPDFSource(path string) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &PDFSource{doc: doc, path: path, pages: doc.NumPage()}, nil
}

func (p *PDFSource) PageCount() int {
	return p.pages
}

// PageSize is the page's extent in PDF points
func (p *PDFSource) PageSize(page int) (canvas.Size, error) {
	if err := checkPage(page, p.pages); err != nil {
		return canvas.Size{}, err
	}
	rect, err := p.doc.Bound(page)
	if err != nil {
		return canvas.Size{}, fmt.Errorf("%s page %d: %w", p.path, page+1, err)
	}
	return canvas.Size{W: float64(rect.Dx()), H: float64(rect.Dy())}, nil
}

// RenderPage opens its own document handle so slides sharing a PDF can render in parallel
func (p *PDFSource) RenderPage(page int, dpi int) (image.Image, error) {
	if err := checkPage(page, p.pages); err != nil {
		return nil, err
	}
	if dpi <= 0 {
		return nil, fmt.Errorf("render %s: dpi must be positive, got %d", p.path, dpi)
	}

	doc, err := fitz.New(p.path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", p.path, err)
	}
	defer doc.Close()

	img, err := doc.ImageDPI(page, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("render %s page %d: %w", p.path, page+1, err)
	}
	return img, nil
}

func (p *PDFSource) Close() error {
	return p.doc.Close()
}
