// Package Rand provides the seedable pseudo-random streams used to draw treap priorities.
package Rand

import "errors"

// ErrZeroBound is the panic value of Rand(0).
var ErrZeroBound = errors.New("Rand: bound must be positive")

// Source is a reproducible stream of pseudo-random numbers. Two sources built from the same seed
// produce the same stream.
type Source interface {
	// Next raw 64 bit value of the stream.
	Next() uint64
	// Rand returns a value uniformly distributed in [0, bound), consuming one or more values of
	// the stream. Panics with ErrZeroBound if bound is 0.
	Rand(bound uint64) uint64
	// Clone the current state. The clone and the original then advance independently.
	Clone() Source
}
