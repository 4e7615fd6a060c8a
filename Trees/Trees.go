package Trees

import (
	treaps "github.com/g-m-twostay/treaps"
	"golang.org/x/exp/constraints"
)

// Sequence is a 0-indexed list of numbers that maintains sums over ranges of positions.
// Positions are always in-order positions, never values. Receivers that take positions return an
// error wrapping ErrIndexOutOfRange or ErrInvalidRange when the arguments are out of bounds; the
// sequence is unchanged in that case.
type Sequence[T treaps.Number, S constraints.Unsigned] interface {
	//Insert v so that it ends up at position k, 0<=k<=Len().
	Insert(k S, v T) error
	//Erase the element at position k, 0<=k<Len().
	Erase(k S) error
	//Get the element at position k, 0<=k<Len().
	Get(k S) (T, error)
	//Set the element at position k to v, 0<=k<Len().
	Set(k S, v T) error
	//Sum of the elements at positions [l,r), 0<=l<=r<=Len(). The sum of an empty range is 0.
	Sum(l, r S) (T, error)
	//Len of the sequence.
	Len() S
	//InOrder calls f with the elements from position 0 onwards until f returns false.
	//The sequence must not be modified by f.
	InOrder(f func(*T) bool)
	//Corrupt returns whether the underlying structure violates its invariants.
	Corrupt() bool
}
