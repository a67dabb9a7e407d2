package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// painter rasterises axis-aligned shapes onto dst with source-over blending.
type painter struct {
	dst    draw.Image
	bounds image.Rectangle
	raster *vector.Rasterizer
}

func newPainter(dst draw.Image) *painter {
	b := dst.Bounds()
	return &painter{
		dst:    dst,
		bounds: b,
		raster: vector.NewRasterizer(b.Dx(), b.Dy()),
	}
}

// fillRect covers [x0,x1]x[y0,y1], clipped to the surface.
func (p *painter) fillRect(x0, y0, x1, y1 float64, c color.Color) {
	w, h := float64(p.bounds.Dx()), float64(p.bounds.Dy())
	x0, x1 = clamp(x0-float64(p.bounds.Min.X), 0, w), clamp(x1-float64(p.bounds.Min.X), 0, w)
	y0, y1 = clamp(y0-float64(p.bounds.Min.Y), 0, h), clamp(y1-float64(p.bounds.Min.Y), 0, h)
	if x1 <= x0 || y1 <= y0 {
		return
	}

	p.raster.Reset(p.bounds.Dx(), p.bounds.Dy())
	p.raster.DrawOp = draw.Over
	p.raster.MoveTo(float32(x0), float32(y0))
	p.raster.LineTo(float32(x1), float32(y0))
	p.raster.LineTo(float32(x1), float32(y1))
	p.raster.LineTo(float32(x0), float32(y1))
	p.raster.ClosePath()
	p.raster.Draw(p.dst, p.bounds, image.NewUniform(c), image.Point{})
}

// strokeRect outlines the box with a line centred on its edges. A nil dash
// pattern draws a solid line.
func (p *painter) strokeRect(x0, y0, x1, y1, width float64, dash []float64, c color.Color) {
	hw := width / 2
	if dash == nil {
		p.fillRect(x0-hw, y0-hw, x1+hw, y0+hw, c)
		p.fillRect(x0-hw, y1-hw, x1+hw, y1+hw, c)
		p.fillRect(x0-hw, y0+hw, x0+hw, y1-hw, c)
		p.fillRect(x1-hw, y0+hw, x1+hw, y1-hw, c)
		return
	}

	// The dash phase runs continuously around the perimeter starting at the
	// top-left corner, clockwise.
	corners := [5][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}
	var offset float64
	for i := 0; i < 4; i++ {
		ax, ay := corners[i][0], corners[i][1]
		bx, by := corners[i+1][0], corners[i+1][1]
		length := math.Abs(bx-ax) + math.Abs(by-ay)

		if dashVisible(offset, dash) {
			p.fillRect(ax-hw, ay-hw, ax+hw, ay+hw, c)
		}

		for pos := 0.0; pos < length; {
			on, remaining := dashState(offset+pos, dash)
			step := math.Min(remaining, length-pos)
			if on && step > 0 {
				sx, sy := lerp(ax, ay, bx, by, pos/length)
				ex, ey := lerp(ax, ay, bx, by, (pos+step)/length)
				p.fillRect(math.Min(sx, ex)-edgePad(ax, bx, hw), math.Min(sy, ey)-edgePad(ay, by, hw),
					math.Max(sx, ex)+edgePad(ax, bx, hw), math.Max(sy, ey)+edgePad(ay, by, hw), c)
			}
			pos += step
		}
		offset += length
	}
}

// edgePad widens a segment across its direction of travel only.
func edgePad(a, b, hw float64) float64 {
	if a == b {
		return hw
	}
	return 0
}

// dashState reports whether distance d falls on a dash and how far the
// current dash or gap continues.
func dashState(d float64, dash []float64) (bool, float64) {
	var period float64
	for _, v := range dash {
		period += v
	}
	if period <= 0 {
		return true, math.Inf(1)
	}
	d = math.Mod(d, period)
	for i, v := range dash {
		if d < v {
			return i%2 == 0, v - d
		}
		d -= v
	}
	return true, dash[0]
}

func dashVisible(d float64, dash []float64) bool {
	on, _ := dashState(d, dash)
	return on
}

func lerp(ax, ay, bx, by, t float64) (float64, float64) {
	return ax + (bx-ax)*t, ay + (by-ay)*t
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
