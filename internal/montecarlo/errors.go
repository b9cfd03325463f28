package montecarlo

import "errors"

// ErrInvalidArgument is returned for a zero sample, repetition or thread count.
var ErrInvalidArgument = errors.New("montecarlo: invalid argument")
