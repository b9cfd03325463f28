package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
)

// ConvergencePoint is one step of a sample-count sweep.
type ConvergencePoint struct {
	Samples  uint64
	Estimate float64
}

func (p ConvergencePoint) AbsError() float64 {
	return math.Abs(p.Estimate - math.Pi)
}

// EstimatesPlot charts per-repetition estimates against their index.
func EstimatesPlot(estimates []float64) string {
	if len(estimates) == 0 {
		return ""
	}
	data := estimates
	if len(data) == 1 {
		data = []float64{data[0], data[0]}
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Precision(4),
		asciigraph.Caption(fmt.Sprintf("estimate per repetition (n=%d)", len(estimates))),
	)
}

// ConvergencePlot charts log10 of the absolute error at each sweep step.
// An exact hit is clamped to 1e-12 so the log stays finite.
func ConvergencePlot(points []ConvergencePoint) string {
	if len(points) == 0 {
		return ""
	}
	data := make([]float64, len(points))
	for i, p := range points {
		data[i] = math.Log10(math.Max(p.AbsError(), 1e-12))
	}
	if len(data) == 1 {
		data = append(data, data[0])
	}
	caption := fmt.Sprintf("log10 |estimate - pi|, samples %d .. %d",
		points[0].Samples, points[len(points)-1].Samples)
	return asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	)
}
