package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/ivlev/canvasdeck/internal/canvas"
	"github.com/ivlev/canvasdeck/internal/slide"
)

// kappa places cubic control points for a quarter circle
const kappa = 0.5522847498

const (
	linePadding = 12.0
	lineHeight  = 18.0
)

func newRasterizer(dst *image.RGBA) *vector.Rasterizer {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	return z
}

// clipLine trims a segment to r (Liang-Barsky). ok is false when nothing is left.
func clipLine(a, b canvas.Point, r canvas.Rect) (canvas.Point, canvas.Point, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := b.X-a.X, b.Y-a.Y
	edges := [4][2]float64{
		{-dx, a.X - r.X},
		{dx, r.X + r.W - a.X},
		{-dy, a.Y - r.Y},
		{dy, r.Y + r.H - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	return canvas.Point{X: a.X + t0*dx, Y: a.Y + t0*dy}, canvas.Point{X: a.X + t1*dx, Y: a.Y + t1*dy}, true
}

// dashedLine strokes a-b with dashes and gaps of equal length
func dashedLine(dst *image.RGBA, a, b canvas.Point, width, dash float64, c color.Color) {
	bounds := dst.Bounds()
	inset := canvas.Rect{
		X: width, Y: width,
		W: float64(bounds.Dx()) - 2*width, H: float64(bounds.Dy()) - 2*width,
	}
	// Dash phase stays anchored at a even when the visible part starts later
	ca, cb, ok := clipLine(a, b, inset)
	if !ok {
		return
	}

	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length
	nx, ny := -uy*width/2, ux*width/2

	from := math.Hypot(ca.X-a.X, ca.Y-a.Y)
	to := math.Hypot(cb.X-a.X, cb.Y-a.Y)

	z := newRasterizer(dst)
	drawn := false
	for s := math.Floor(from/(2*dash)) * 2 * dash; s < to; s += 2 * dash {
		s0 := math.Max(s, from)
		s1 := math.Min(s+dash, to)
		if s1 <= s0 {
			continue
		}
		x0, y0 := a.X+ux*s0, a.Y+uy*s0
		x1, y1 := a.X+ux*s1, a.Y+uy*s1
		z.MoveTo(float32(x0+nx), float32(y0+ny))
		z.LineTo(float32(x1+nx), float32(y1+ny))
		z.LineTo(float32(x1-nx), float32(y1-ny))
		z.LineTo(float32(x0-nx), float32(y0-ny))
		z.ClosePath()
		drawn = true
	}
	if drawn {
		z.Draw(dst, bounds, image.NewUniform(c), image.Point{})
	}
}

func circlePath(z *vector.Rasterizer, cx, cy, r float64) {
	k := r * kappa
	p := func(x, y float64) (float32, float32) { return float32(x), float32(y) }

	z.MoveTo(p(cx+r, cy))
	x1, y1 := p(cx+r, cy+k)
	x2, y2 := p(cx+k, cy+r)
	x3, y3 := p(cx, cy+r)
	z.CubeTo(x1, y1, x2, y2, x3, y3)
	x1, y1 = p(cx-k, cy+r)
	x2, y2 = p(cx-r, cy+k)
	x3, y3 = p(cx-r, cy)
	z.CubeTo(x1, y1, x2, y2, x3, y3)
	x1, y1 = p(cx-r, cy-k)
	x2, y2 = p(cx-k, cy-r)
	x3, y3 = p(cx, cy-r)
	z.CubeTo(x1, y1, x2, y2, x3, y3)
	x1, y1 = p(cx+k, cy-r)
	x2, y2 = p(cx+r, cy-k)
	x3, y3 = p(cx+r, cy)
	z.CubeTo(x1, y1, x2, y2, x3, y3)
	z.ClosePath()
}

func fillDisc(dst *image.RGBA, cx, cy, r float64, c color.Color) {
	if r <= 0 {
		return
	}
	b := dst.Bounds()
	if cx+r < 0 || cy+r < 0 || cx-r > float64(b.Dx()) || cy-r > float64(b.Dy()) {
		return
	}
	z := newRasterizer(dst)
	circlePath(z, cx, cy, r)
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

func drawNode(dst *image.RGBA, r canvas.Rect) {
	c := r.Center()
	radius := math.Min(r.W, r.H) / 2
	fillDisc(dst, c.X, c.Y, radius, nodeRing)
	fillDisc(dst, c.X, c.Y, radius-2, nodeFill)
}

func fillRect(dst *image.RGBA, r canvas.Rect, c color.Color) {
	rr := image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.W)), int(math.Ceil(r.Y+r.H)),
	).Intersect(dst.Bounds())
	if rr.Empty() {
		return
	}
	draw.Draw(dst, rr, image.NewUniform(c), image.Point{}, draw.Over)
}

func newDrawer(dst *image.RGBA, c color.Color) *font.Drawer {
	return &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: basicfont.Face7x13}
}

// drawCentered draws text horizontally centered on x with its baseline at y
func drawCentered(dst *image.RGBA, text string, x, y float64, c color.Color) {
	d := newDrawer(dst, c)
	w := d.MeasureString(text).Ceil()
	d.Dot = fixed.P(int(x)-w/2, int(y))
	d.DrawString(text)
}

func drawOverlay(dst *image.RGBA, o slide.OverlayView, r canvas.Rect) {
	bg, fg := color.Color(panel), color.Color(ink)
	if o.Kind == "thinking" {
		bg, fg = darkPanel, color.White
	}
	fillRect(dst, canvas.Rect{X: r.X - 1, Y: r.Y - 1, W: r.W + 2, H: r.H + 2}, nodeRing)
	fillRect(dst, r, bg)

	y := r.Y + linePadding
	for _, item := range o.Items {
		y += lineHeight
		if y > r.Y+r.H {
			break
		}
		c := fg
		if item.Highlighted {
			c = highlight
		}
		d := newDrawer(dst, c)
		x := int(r.X + linePadding)
		d.Dot = fixed.P(x, int(y))
		d.DrawString(item.Text)
		if item.CrossedOut {
			w := float64(d.MeasureString(item.Text).Ceil())
			fillRect(dst, canvas.Rect{X: float64(x), Y: y - 5, W: w, H: 1}, struck)
		}
	}
}
