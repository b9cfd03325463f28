package montecarlo

import "fmt"

// Estimate draws n points from src and returns 4·M/n, where M is the
// number of points strictly inside the unit circle. It advances src by
// exactly 2n draws.
func Estimate(src Source, n uint64) (float64, error) {
	if n == 0 {
		return 0, fmt.Errorf("%w: sample count must be positive", ErrInvalidArgument)
	}

	var inside uint64
	for range n {
		x := src.Float64()
		y := src.Float64()
		if x*x+y*y < 1.0 {
			inside++
		}
	}

	return 4.0 * float64(inside) / float64(n), nil
}

// Mean is the plain arithmetic mean of xs.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, fmt.Errorf("%w: no estimates to average", ErrInvalidArgument)
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs)), nil
}
