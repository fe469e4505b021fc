package render

import (
	"fmt"
	"strings"
)

// FillMode selects the triangle fill algorithm.
type FillMode int

const (
	FillEdge     FillMode = iota // edge functions over the bounding box
	FillScanline                 // horizontal spans between edges
)

func (m FillMode) String() string {
	switch m {
	case FillEdge:
		return "edge"
	case FillScanline:
		return "scanline"
	default:
		return fmt.Sprintf("FillMode(%d)", int(m))
	}
}

// ParseFillMode parses "edge" or "scanline".
func ParseFillMode(s string) (FillMode, error) {
	switch strings.ToLower(s) {
	case "", "edge", "barycentric":
		return FillEdge, nil
	case "scanline":
		return FillScanline, nil
	default:
		return 0, fmt.Errorf("unknown fill mode %q", s)
	}
}

// Rasterizer draws screen-space triangles into a framebuffer.
// Both fill modes cover exactly the closed triangle for integer vertices,
// so they produce identical pixels.
type Rasterizer struct {
	fb   *Framebuffer
	Fill FillMode
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	return &Rasterizer{fb: fb}
}

// SetFramebuffer retargets the rasterizer.
func (r *Rasterizer) SetFramebuffer(fb *Framebuffer) {
	r.fb = fb
}

// FillTriangle fills the triangle p0 p1 p2 with c. It returns false, writing
// nothing, when the triangle has zero area. Pixels outside the framebuffer
// are clipped.
func (r *Rasterizer) FillTriangle(p0, p1, p2 Point, c Color) bool {
	if orient(p0, p1, p2) == 0 {
		return false
	}
	if r.fb == nil {
		return true
	}
	switch r.Fill {
	case FillScanline:
		r.fillScanline(p0, p1, p2, c)
	default:
		r.fillEdge(p0, p1, p2, c)
	}
	return true
}

// DrawTriangle draws the outline of the triangle p0 p1 p2.
func (r *Rasterizer) DrawTriangle(p0, p1, p2 Point, c Color) {
	if r.fb == nil {
		return
	}
	r.fb.DrawLine(p0.X, p0.Y, p1.X, p1.Y, c)
	r.fb.DrawLine(p1.X, p1.Y, p2.X, p2.Y, c)
	r.fb.DrawLine(p2.X, p2.Y, p0.X, p0.Y, c)
}

// fillScanline walks rows top to bottom, filling between the long edge
// (top to bottom vertex) and whichever short edge spans the row. Edge
// crossings are kept as exact fractions so span ends match the closed
// triangle.
func (r *Rasterizer) fillScanline(p0, p1, p2 Point, c Color) {
	a, b, d := sortByY(p0, p1, p2)

	yStart := max(a.Y, 0)
	yEnd := min(d.Y, r.fb.Height-1)

	for y := yStart; y <= yEnd; y++ {
		ln, ld := edgeX(a, d, y)

		var sn, sd int64
		switch {
		case y < b.Y:
			sn, sd = edgeX(a, b, y)
		case b.Y == d.Y:
			// Flat bottom: the row is the edge b-d itself
			sn, sd = int64(b.X), 1
		default:
			sn, sd = edgeX(b, d, y)
		}

		x0 := min(ceilDiv(ln, ld), ceilDiv(sn, sd))
		x1 := max(floorDiv(ln, ld), floorDiv(sn, sd))
		r.fb.FillSpan(y, int(x0), int(x1), c)
	}
}

// sortByY orders three points by ascending Y.
func sortByY(a, b, c Point) (Point, Point, Point) {
	if b.Y < a.Y {
		a, b = b, a
	}
	if c.Y < b.Y {
		b, c = c, b
	}
	if b.Y < a.Y {
		a, b = b, a
	}
	return a, b, c
}

// edgeX returns the X coordinate of edge p-q at row y as the fraction n/d
// with d > 0. Requires p.Y < q.Y.
func edgeX(p, q Point, y int) (n, d int64) {
	d = int64(q.Y - p.Y)
	n = int64(p.X)*d + int64(q.X-p.X)*int64(y-p.Y)
	return n, d
}

func floorDiv(n, d int64) int64 {
	q := n / d
	if n%d != 0 && n < 0 {
		q--
	}
	return q
}

func ceilDiv(n, d int64) int64 {
	q := n / d
	if n%d != 0 && n > 0 {
		q++
	}
	return q
}
