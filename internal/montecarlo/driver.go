package montecarlo

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"
)

type Driver struct {
	factory   SourceFactory
	observers []Observer
}

func NewDriver(factory SourceFactory) *Driver {
	if factory == nil {
		factory = EntropySources
	}
	return &Driver{factory: factory}
}

func (d *Driver) AddObserver(o Observer) {
	d.observers = append(d.observers, o)
}

// Run executes cfg.Repeat estimates of cfg.Samples points each on
// cfg.Threads workers. Repetition i is owned by worker i mod Threads, so
// every slot of the results slice has exactly one writer.
func (d *Driver) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sources := make([]Source, cfg.Threads)
	for w := range sources {
		sources[w] = d.factory(w)
	}

	estimates := make([]float64, cfg.Repeat)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Threads && w < cfg.Repeat; w++ {
		src := sources[w]
		g.Go(func() error {
			for i := w; i < cfg.Repeat; i += cfg.Threads {
				if err := gctx.Err(); err != nil {
					return err
				}
				pi, err := Estimate(src, cfg.Samples)
				if err != nil {
					return err
				}
				estimates[i] = pi
				for _, o := range d.observers {
					o.OnRepetition(i, w, pi)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	mean, err := Mean(estimates)
	if err != nil {
		return nil, err
	}

	return &Result{
		Mean:      mean,
		Estimates: estimates,
		Threads:   cfg.Threads,
		Samples:   cfg.Samples,
		Elapsed:   time.Since(start),
	}, nil
}

// EntropySources seeds a PCG generator for each worker from OS entropy.
// It mirrors rng.NewEntropySeeder with the pcg generator; rng imports this
// package, so the default factory cannot come from there.
func EntropySources(worker int) Source {
	var buf [16]byte
	// crypto/rand.Read never returns an error; it crashes the program if
	// the entropy source fails.
	_, _ = crand.Read(buf[:])
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(buf[:8]), binary.LittleEndian.Uint64(buf[8:])))
}

// Run averages r estimates of n samples each over t workers using
// entropy-seeded sources.
func Run(t, r int, n uint64) (float64, error) {
	res, err := NewDriver(nil).Run(context.Background(), Config{Threads: t, Repeat: r, Samples: n})
	if err != nil {
		return 0, err
	}
	return res.Mean, nil
}
