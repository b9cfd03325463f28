package montecarlo

import (
	"fmt"
	"runtime"
	"time"
)

// Source yields uniformly distributed values in [0,1).
type Source interface {
	Float64() float64
}

// SourceFactory builds the source owned by the given worker.
type SourceFactory func(worker int) Source

// Observer is notified from worker goroutines as repetitions complete, so
// implementations must be safe for concurrent use.
type Observer interface {
	OnRepetition(index, worker int, estimate float64)
}

type ObserverFunc func(index, worker int, estimate float64)

func (f ObserverFunc) OnRepetition(index, worker int, estimate float64) {
	f(index, worker, estimate)
}

type Config struct {
	Threads int
	Repeat  int
	Samples uint64
}

// DefaultThreads is the host parallelism.
func DefaultThreads() int {
	return runtime.NumCPU()
}

func DefaultConfig() Config {
	return Config{
		Threads: DefaultThreads(),
		Repeat:  1,
		Samples: 1_000_000,
	}
}

func (c Config) Validate() error {
	if c.Threads < 1 {
		return fmt.Errorf("%w: thread count must be positive, got %d", ErrInvalidArgument, c.Threads)
	}
	if c.Repeat < 1 {
		return fmt.Errorf("%w: repetition count must be positive, got %d", ErrInvalidArgument, c.Repeat)
	}
	if c.Samples < 1 {
		return fmt.Errorf("%w: sample count must be positive", ErrInvalidArgument)
	}
	return nil
}

type Result struct {
	Mean      float64
	Estimates []float64
	Threads   int
	Samples   uint64
	Elapsed   time.Duration
}
