package export

import (
	"math/rand/v2"
	"strings"
	"testing"
)

type fixedSource struct {
	values []float64
	i      int
}

func (f *fixedSource) Float64() float64 {
	v := f.values[f.i%len(f.values)]
	f.i++
	return v
}

func TestSamplesSVG(t *testing.T) {
	src := &fixedSource{values: []float64{0.1, 0.1, 0.9, 0.9}}
	svg, pi := SamplesSVG(src, 4, 100)

	if pi != 2.0 {
		t.Errorf("expected estimate 2.0, got %f", pi)
	}
	if n := strings.Count(svg, "<circle"); n != 4 {
		t.Errorf("expected 4 circles, got %d", n)
	}
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("malformed svg document")
	}
}

func TestSamplesSVG_Empty(t *testing.T) {
	svg, pi := SamplesSVG(rand.New(rand.NewPCG(1, 2)), 0, 100)
	if svg != "" || pi != 0 {
		t.Error("expected empty output for zero points")
	}
}

func TestConvergenceSVG(t *testing.T) {
	svg := ConvergenceSVG([]uint64{10, 100, 1000}, []float64{3.6, 3.2, 3.14}, 200, 100)
	if !strings.Contains(svg, "<path") {
		t.Errorf("expected path in svg:\n%s", svg)
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments, got %d", strings.Count(svg, " L"))
	}

	if ConvergenceSVG([]uint64{10}, nil, 200, 100) != "" {
		t.Error("expected empty output for mismatched input")
	}
}

func TestLineSVG_NoPoints(t *testing.T) {
	if LineSVG(nil, 10, 10, "#fff") != "" {
		t.Error("expected empty output for no points")
	}
}

func TestConvergenceSVG_SinglePoint(t *testing.T) {
	svg := ConvergenceSVG([]uint64{100}, []float64{3.2}, 200, 100)
	if svg == "" {
		t.Fatal("expected output for a single point")
	}
	if !strings.Contains(svg, `<circle cx="100.0" cy="50.0"`) {
		t.Errorf("expected a dot at the lone point:\n%s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Errorf("unterminated svg:\n%s", svg)
	}
}
