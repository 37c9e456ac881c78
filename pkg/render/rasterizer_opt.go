package render

import "math"

// edgeCoeffs returns A, B, C for the edge function
// edge(x,y) = A*x + B*y + C, which is positive left of the edge.
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1 // dy
	B = x1 - x0 // -dx
	C = x0*y1 - x1*y0
	return
}

// edgeFunc evaluates edge function at point (x, y)
func edgeFunc(A, B, C, x, y float64) float64 {
	return A*x + B*y + C
}

// rasterizeTriangle walks the pixel centres covered by a screen-space
// triangle using incremental edge functions and calls plot with the
// barycentric weights of each covered pixel. Back-facing triangles are
// skipped when cull is set, otherwise they are flipped.
func rasterizeTriangle(width, height int, p [3][2]float64, cull bool, plot func(x, y int, b0, b1, b2 float64)) {
	area2 := (p[1][0]-p[0][0])*(p[2][1]-p[0][1]) - (p[1][1]-p[0][1])*(p[2][0]-p[0][0])
	if area2 == 0 || (cull && area2 < 0) {
		return
	}

	// Bounding box (clamped to screen)
	minX := int(math.Max(0, math.Floor(min(p[0][0], p[1][0], p[2][0]))))
	maxX := int(math.Min(float64(width-1), math.Ceil(max(p[0][0], p[1][0], p[2][0]))))
	minY := int(math.Max(0, math.Floor(min(p[0][1], p[1][1], p[2][1]))))
	maxY := int(math.Min(float64(height-1), math.Ceil(max(p[0][1], p[1][1], p[2][1]))))
	if minX > maxX || minY > maxY {
		return
	}

	// Edge 0: v1 -> v2, Edge 1: v2 -> v0, Edge 2: v0 -> v1
	A0, B0, C0 := edgeCoeffs(p[1][0], p[1][1], p[2][0], p[2][1])
	A1, B1, C1 := edgeCoeffs(p[2][0], p[2][1], p[0][0], p[0][1])
	A2, B2, C2 := edgeCoeffs(p[0][0], p[0][1], p[1][0], p[1][1])

	sign := 1.0
	if area2 < 0 {
		sign = -1
	}
	invArea := 1.0 / area2

	// Evaluate edge functions at the first pixel centre
	px := float64(minX) + 0.5
	py := float64(minY) + 0.5
	w0Row := edgeFunc(A0, B0, C0, px, py)
	w1Row := edgeFunc(A1, B1, C1, px, py)
	w2Row := edgeFunc(A2, B2, C2, px, py)

	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		for x := minX; x <= maxX; x++ {
			if w0*sign >= 0 && w1*sign >= 0 && w2*sign >= 0 {
				plot(x, y, w0*invArea, w1*invArea, w2*invArea)
			}
			// Step in X direction
			w0 += A0
			w1 += A1
			w2 += A2
		}
		// Step in Y direction
		w0Row += B0
		w1Row += B1
		w2Row += B2
	}
}
