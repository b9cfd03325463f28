package rng

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/san-kum/mcpi/internal/montecarlo"
)

type Registry struct {
	generators map[string]func(s1, s2 uint64) montecarlo.Source
}

func NewRegistry() *Registry {
	r := &Registry{
		generators: make(map[string]func(s1, s2 uint64) montecarlo.Source),
	}

	r.generators["pcg"] = func(s1, s2 uint64) montecarlo.Source {
		return rand.New(rand.NewPCG(s1, s2))
	}
	r.generators["chacha8"] = func(s1, s2 uint64) montecarlo.Source {
		var seed [32]byte
		binary.LittleEndian.PutUint64(seed[0:], s1)
		binary.LittleEndian.PutUint64(seed[8:], s2)
		binary.LittleEndian.PutUint64(seed[16:], splitmix64(s1))
		binary.LittleEndian.PutUint64(seed[24:], splitmix64(s2))
		return rand.New(rand.NewChaCha8(seed))
	}
	r.generators["lcg"] = func(s1, s2 uint64) montecarlo.Source {
		return NewLCG(uint32(s1 ^ s2))
	}

	return r
}

// Factory returns a source factory that builds the named generator for
// each worker, seeded by s.
func (r *Registry) Factory(name string, s Seeder) (montecarlo.SourceFactory, error) {
	fn, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator: %s (available: %v)", name, r.List())
	}
	return func(worker int) montecarlo.Source {
		return fn(s.Seed(worker))
	}, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
