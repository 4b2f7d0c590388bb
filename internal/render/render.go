// Package render rasterizes slide frames with golang.org/x/image.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/ivlev/canvasdeck/internal/canvas"
	"github.com/ivlev/canvasdeck/internal/slide"
	"github.com/ivlev/canvasdeck/internal/system"
)

const (
	defaultStroke = 1.5
	defaultDash   = 4.0
	defaultQRSize = 96
	qrMargin      = 8
)

var (
	paper     = color.RGBA{0xfa, 0xfa, 0xf7, 0xff}
	nodeFill  = color.RGBA{0xe8, 0xee, 0xf7, 0xff}
	nodeRing  = color.RGBA{0x5b, 0x6b, 0x84, 0xff}
	lineColor = color.RGBA{0x6b, 0x72, 0x80, 0xff}
	ink       = color.RGBA{0x22, 0x22, 0x22, 0xff}
	highlight = color.RGBA{0x1b, 0x8a, 0x3a, 0xff}
	struck    = color.RGBA{0xc0, 0x39, 0x2b, 0xff}
	panel     = color.RGBA{0xff, 0xff, 0xff, 0xf0}
	darkPanel = color.RGBA{0x1f, 0x29, 0x37, 0xe6}
)

// Options control what gets drawn on top of the frame geometry
type Options struct {
	// Background is drawn through the camera transform, fitted into the viewport at scale 1
	Background image.Image
	// QR stamps a code of the slide route in the bottom-right corner
	QR     bool
	QRSize int
	Stroke float64
	Dash   float64
}

func (o Options) withDefaults() Options {
	if o.QRSize <= 0 {
		o.QRSize = defaultQRSize
	}
	if o.Stroke <= 0 {
		o.Stroke = defaultStroke
	}
	if o.Dash <= 0 {
		o.Dash = defaultDash
	}
	return o
}

// Frame rasterizes a committed frame. The image covers the viewport; client
// coordinates in the frame are shifted by the viewport origin.
func Frame(f slide.Frame, opts Options) (*image.RGBA, error) {
	opts = opts.withDefaults()

	w := int(math.Ceil(f.Viewport.W))
	h := int(math.Ceil(f.Viewport.H))
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("empty viewport %vx%v", f.Viewport.W, f.Viewport.H)
	}

	// Pooled buffers are dirty; the paper fill uses Src so every pixel is overwritten
	dst := system.GetImage(image.Pt(w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(paper), image.Point{}, draw.Src)

	if opts.Background != nil {
		drawBackground(dst, opts.Background, f.Transform)
	}

	for _, c := range f.Connectors {
		if c.Segment == nil {
			continue
		}
		dashedLine(dst, c.Segment.Start, c.Segment.End, opts.Stroke, opts.Dash, lineColor)
	}

	origin := f.Viewport.Origin()
	for _, n := range f.Nodes {
		if n.Rect == nil {
			continue
		}
		r := local(*n.Rect, origin)
		drawNode(dst, r)
		text := n.Label
		if text == "" {
			text = n.ID
		}
		drawCentered(dst, text, r.Center().X, r.Y+r.H+14, ink)
	}

	for _, o := range f.Overlays {
		if !o.Open || o.Rect == nil {
			continue
		}
		drawOverlay(dst, o, local(*o.Rect, origin))
	}

	if opts.QR && f.Route != "" {
		if err := stampQR(dst, f.Route, opts.QRSize); err != nil {
			system.PutImage(dst)
			return nil, err
		}
	}

	return dst, nil
}

func local(r canvas.Rect, origin canvas.Point) canvas.Rect {
	return canvas.Rect{X: r.X - origin.X, Y: r.Y - origin.Y, W: r.W, H: r.H}
}

func drawBackground(dst *image.RGBA, bg image.Image, t canvas.Transform) {
	sr := bg.Bounds()
	if sr.Empty() {
		return
	}
	b := dst.Bounds()
	fit := math.Min(float64(b.Dx())/float64(sr.Dx()), float64(b.Dy())/float64(sr.Dy()))

	m := t.Matrix()
	sx, sy := m[0]*fit, m[4]*fit
	s2d := f64.Aff3{
		sx, 0, m[2] - sx*float64(sr.Min.X),
		0, sy, m[5] - sy*float64(sr.Min.Y),
	}
	xdraw.BiLinear.Transform(dst, s2d, bg, sr, xdraw.Over, nil)
}

func stampQR(dst *image.RGBA, route string, size int) error {
	q, err := qrcode.New(route, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("qr for %q: %w", route, err)
	}
	q.DisableBorder = true
	code := q.Image(size)

	b := dst.Bounds()
	at := image.Pt(b.Max.X-size-qrMargin, b.Max.Y-size-qrMargin)
	draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(image.Pt(size, size))}, code, code.Bounds().Min, draw.Src)
	return nil
}

// Release returns a rendered image to the buffer pool. The image must not be used afterwards.
func Release(img *image.RGBA) {
	system.PutImage(img)
}

// Encode writes the image as PNG
func Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WritePNG saves the image to path
func WritePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
