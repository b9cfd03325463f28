package rng

import (
	crand "crypto/rand"
	"encoding/binary"
)

// Seeder hands out the seed pair for one worker's generator.
type Seeder interface {
	Seed(worker int) (uint64, uint64)
}

type entropySeeder struct{}

// NewEntropySeeder reads every seed from the operating system's entropy source.
func NewEntropySeeder() Seeder {
	return entropySeeder{}
}

func (entropySeeder) Seed(int) (uint64, uint64) {
	var buf [16]byte
	// crypto/rand.Read never returns an error; it crashes the program if
	// the entropy source fails.
	_, _ = crand.Read(buf[:])
	return binary.LittleEndian.Uint64(buf[:8]), binary.LittleEndian.Uint64(buf[8:])
}

type fixedSeeder struct {
	master uint64
}

// NewFixedSeeder derives per-worker seeds from a master seed so that a
// run with the same seed and thread count is reproducible.
func NewFixedSeeder(master uint64) Seeder {
	return fixedSeeder{master: master}
}

func (f fixedSeeder) Seed(worker int) (uint64, uint64) {
	base := f.master + uint64(worker)*0x9e3779b97f4a7c15
	return splitmix64(base), splitmix64(base ^ 0xda942042e4dd58b5)
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
