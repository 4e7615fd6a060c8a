package treaps

import (
	"math/bits"
)

// BitArray is a fixed set of small non-negative integers.
type BitArray struct {
	words []uint
}

// NewBitArray with room for at least size bits, all down.
func NewBitArray(size int) BitArray {
	return BitArray{words: make([]uint, (size+bits.UintSize-1)/bits.UintSize)}
}

// Swap sets bit i to up and returns its previous state.
func (u BitArray) Swap(i int) bool {
	w, m := &u.words[i/bits.UintSize], uint(1)<<(i%bits.UintSize)
	old := *w&m != 0
	*w |= m
	return old
}
