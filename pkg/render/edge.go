package render

// Edge function rasterization with incremental updates: each edge is the
// linear form A*x + B*y + C, stepped by A per column and B per row instead
// of being re-evaluated per pixel. Coordinates are integers so the arithmetic
// is exact.

// edgeCoeffs returns A, B, C for the edge a -> b such that
// A*x + B*y + C is the cross product (b-a) x (p-a) for p = (x, y).
// Positive = left of edge, negative = right of edge, zero = on edge.
func edgeCoeffs(a, b Point) (A, B, C int64) {
	A = int64(a.Y - b.Y)
	B = int64(b.X - a.X)
	C = int64(a.X)*int64(b.Y) - int64(b.X)*int64(a.Y)
	return
}

// orient returns twice the signed area of triangle a b c.
func orient(a, b, c Point) int64 {
	return int64(b.X-a.X)*int64(c.Y-a.Y) - int64(b.Y-a.Y)*int64(c.X-a.X)
}

// fillEdge writes every pixel whose barycentric weights are all
// non-negative. Callers have already rejected zero-area triangles.
func (r *Rasterizer) fillEdge(p0, p1, p2 Point, c Color) {
	// Bounding box (clamped to screen)
	minX := max(min(p0.X, p1.X, p2.X), 0)
	maxX := min(max(p0.X, p1.X, p2.X), r.fb.Width-1)
	minY := max(min(p0.Y, p1.Y, p2.Y), 0)
	maxY := min(max(p0.Y, p1.Y, p2.Y), r.fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	// Edge 0: v1 -> v2, Edge 1: v2 -> v0, Edge 2: v0 -> v1
	A0, B0, C0 := edgeCoeffs(p1, p2)
	A1, B1, C1 := edgeCoeffs(p2, p0)
	A2, B2, C2 := edgeCoeffs(p0, p1)

	// Flip clockwise triangles so inside is always >= 0
	if orient(p0, p1, p2) < 0 {
		A0, B0, C0 = -A0, -B0, -C0
		A1, B1, C1 = -A1, -B1, -C1
		A2, B2, C2 = -A2, -B2, -C2
	}

	px, py := int64(minX), int64(minY)
	w0Row := A0*px + B0*py + C0
	w1Row := A1*px + B1*py + C1
	w2Row := A2*px + B2*py + C2

	width := r.fb.Width
	pixels := r.fb.Pixels

	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		rowOffset := y * width

		for x := minX; x <= maxX; x++ {
			if w0|w1|w2 >= 0 {
				pixels[rowOffset+x] = c
			}
			w0 += A0
			w1 += A1
			w2 += A2
		}

		w0Row += B0
		w1Row += B1
		w2Row += B2
	}
}
