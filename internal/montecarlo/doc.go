// Package montecarlo estimates π by uniform sampling of the unit square.
//
// The package has two parts:
//
//   - [Estimate]: one estimate from N point draws, 4·M/N where M counts
//     the points with x²+y² < 1
//   - [Driver]: runs R repetitions of [Estimate] on a fixed pool of T
//     workers and reduces them to their arithmetic mean
//
// # Example
//
//	d := montecarlo.NewDriver(factory)
//	res, err := d.Run(ctx, montecarlo.Config{Threads: 4, Repeat: 100, Samples: 1e6})
//
// # Thread Safety
//
// A [Source] is never shared between workers. The driver asks its
// [SourceFactory] for one source per worker and each worker only ever
// draws from its own.
package montecarlo
