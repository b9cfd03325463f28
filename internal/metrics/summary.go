package metrics

import "math"

// Summary describes the spread of per-repetition estimates. It is a
// report for the CLI, nothing more.
type Summary struct {
	Count    int
	Mean     float64
	StdDev   float64
	StdErr   float64
	AbsError float64
	Min      float64
	Max      float64
}

func Summarize(estimates []float64) Summary {
	s := Summary{Count: len(estimates)}
	if s.Count == 0 {
		return s
	}

	s.Min, s.Max = estimates[0], estimates[0]
	sum := 0.0
	for _, v := range estimates {
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean = sum / float64(s.Count)
	s.AbsError = math.Abs(s.Mean - math.Pi)

	if s.Count < 2 {
		return s
	}

	ss := 0.0
	for _, v := range estimates {
		d := v - s.Mean
		ss += d * d
	}
	s.StdDev = math.Sqrt(ss / float64(s.Count-1))
	s.StdErr = s.StdDev / math.Sqrt(float64(s.Count))
	return s
}

// Map flattens the summary for run metadata.
func (s Summary) Map() map[string]float64 {
	return map[string]float64{
		"mean":      s.Mean,
		"std_dev":   s.StdDev,
		"std_err":   s.StdErr,
		"abs_error": s.AbsError,
		"min":       s.Min,
		"max":       s.Max,
	}
}
