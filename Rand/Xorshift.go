package Rand

import (
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

// DefaultSeed is the seed of New, Marsaglia's reference state for xorshift64.
const DefaultSeed uint64 = 88172645463325252

// Xorshift is a 64 bit xorshift generator with the (13, 7, 17) triple. Its period is 2^64-1 and
// the state is never 0. The zero value is not usable; create it with New, Seeded or FromLabel.
type Xorshift struct {
	s uint64
}

// New generator seeded with DefaultSeed.
func New() *Xorshift {
	return &Xorshift{DefaultSeed}
}

// Seeded generator. A zero seed is replaced by DefaultSeed since 0 is a fixed point of xorshift.
func Seeded(seed uint64) *Xorshift {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &Xorshift{seed}
}

// FromLabel seeds a generator with the xxhash of label, so a stream can be named.
func FromLabel(label string) *Xorshift {
	return Seeded(xxhash.Sum64String(label))
}

func (u *Xorshift) Next() uint64 {
	x := u.s
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	u.s = x
	return x
}

// Rand uses Lemire's multiply-high reduction; the rejection loop removes the bias of the
// 2^64 mod bound low products.
func (u *Xorshift) Rand(bound uint64) uint64 {
	if bound == 0 {
		panic(ErrZeroBound)
	}
	hi, lo := bits.Mul64(u.Next(), bound)
	if lo < bound {
		for thresh := -bound % bound; lo < thresh; {
			hi, lo = bits.Mul64(u.Next(), bound)
		}
	}
	return hi
}

func (u *Xorshift) Clone() Source {
	c := *u
	return &c
}

// State of the generator; Seeded(u.State()) continues the same stream.
func (u *Xorshift) State() uint64 {
	return u.s
}
