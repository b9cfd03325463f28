package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/mcpi/internal/montecarlo"
)

// Point is one (x, y) coordinate.
type Point struct{ X, Y float64 }

// SamplesSVG draws n points from src in the unit square and renders them
// against the quarter circle, points inside in green and outside in red.
// It returns the SVG and the fraction-based estimate 4·M/n of those points.
func SamplesSVG(src montecarlo.Source, n, size int) (string, float64) {
	if n <= 0 || size <= 0 {
		return "", 0
	}

	s := float64(size)
	var inside, outside strings.Builder
	hits := 0
	for i := 0; i < n; i++ {
		x, y := src.Float64(), src.Float64()
		cx, cy := x*s, s-y*s
		dot := fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="1"/>
`, cx, cy)
		if x*x+y*y < 1.0 {
			hits++
			inside.WriteString(dot)
		} else {
			outside.WriteString(dot)
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size))
	sb.WriteString(`<g fill="#00ff88">
`)
	sb.WriteString(inside.String())
	sb.WriteString(`</g>
<g fill="#ff4444">
`)
	sb.WriteString(outside.String())
	sb.WriteString(fmt.Sprintf(`</g>
<path fill="none" stroke="#00ccff" stroke-width="1.5" d="M0,0 A%d,%d 0 0,1 %d,%d"/>
</svg>`, size, size, size, size))

	return sb.String(), 4.0 * float64(hits) / float64(n)
}

// ConvergenceSVG plots log10 |estimate - pi| against log10 samples.
func ConvergenceSVG(samples []uint64, estimates []float64, width, height int) string {
	if len(samples) != len(estimates) {
		return ""
	}
	points := make([]Point, len(samples))
	for i := range samples {
		points[i] = Point{
			X: math.Log10(float64(samples[i])),
			Y: math.Log10(math.Max(math.Abs(estimates[i]-math.Pi), 1e-12)),
		}
	}
	return LineSVG(points, width, height, "#00ff00")
}

// LineSVG renders points as a single path scaled to fit the canvas with
// ten percent padding. A lone point is drawn as a dot.
func LineSVG(points []Point, width, height int, strokeColor string) string {
	if len(points) == 0 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	var x, y float64
	for i, p := range points {
		x = (p.X - minX) / rangeX * float64(width)
		y = float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
`)
	if len(points) == 1 {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, x, y, strokeColor))
	}
	sb.WriteString(`</svg>`)
	return sb.String()
}
