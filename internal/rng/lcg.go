package rng

// LCG is the 32-bit linear congruential generator from Numerical Recipes.
// Its low bits are poor and its period is 2^32, so it serves as a weak
// baseline next to the PCG and ChaCha8 generators.
type LCG struct {
	state uint32
}

func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

func (l *LCG) Uint32() uint32 {
	l.state = l.state*1664525 + 1013904223
	return l.state
}

// Float64 uses the top 24 bits of the next state, which keeps the result in [0,1).
func (l *LCG) Float64() float64 {
	return float64(l.Uint32()>>8) / (1 << 24)
}
