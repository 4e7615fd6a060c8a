package Trees

import (
	treaps "github.com/g-m-twostay/treaps"
	"github.com/g-m-twostay/treaps/Rand"
	"golang.org/x/exp/constraints"
)

// Sorted is a multiset of numbers kept in ascending order. It wraps a Treap and exposes only the
// operations that preserve the order, so ranks and bounds are always meaningful. A new value goes
// before the values already equal to it.
type Sorted[T treaps.Number, S constraints.Unsigned] struct {
	t Treap[T, S]
}

func NewSorted[T treaps.Number, S constraints.Unsigned](src Rand.Source, hint S) *Sorted[T, S] {
	return &Sorted[T, S]{*NewWith[T, S](src, hint)}
}

func (u *Sorted[T, S]) Len() S {
	return u.t.Len()
}

// Insert v and return the position it was inserted at.
// Time: O(D)
func (u *Sorted[T, S]) Insert(v T) (S, error) {
	k := u.t.bisect(u.t.root, v)
	if err := u.t.Insert(k, v); err != nil {
		return 0, err
	}
	return k, nil
}

// Remove one element equal to v. Returns false if there is none.
// Time: O(D)
func (u *Sorted[T, S]) Remove(v T) bool {
	if k := u.t.bisect(u.t.root, v); k < u.t.Len() && u.t.at(u.t.root, k).v == v {
		u.t.root = u.t.erase(u.t.root, k)
		return true
	}
	return false
}

// EraseAt removes the element of rank k, 0<=k<Len().
func (u *Sorted[T, S]) EraseAt(k S) error {
	return u.t.Erase(k)
}

// LowerBound is the number of elements less than v.
// Time: O(D); Space: O(1)
func (u *Sorted[T, S]) LowerBound(v T) S {
	return u.t.bisect(u.t.root, v)
}

// UpperBound is the number of elements less than or equal to v.
// Time: O(D); Space: O(1)
func (u *Sorted[T, S]) UpperBound(v T) S {
	return u.t.bisectRight(u.t.root, v)
}

// Count of elements equal to v.
func (u *Sorted[T, S]) Count(v T) S {
	return u.UpperBound(v) - u.LowerBound(v)
}

// At returns the element of rank k, 0<=k<Len().
func (u *Sorted[T, S]) At(k S) (T, error) {
	return u.t.Get(k)
}

// Sum of the elements of rank [l,r).
func (u *Sorted[T, S]) Sum(l, r S) (T, error) {
	return u.t.Sum(l, r)
}

// SumBelow is the sum of the elements less than v.
// Time: O(D); Space: O(1)
func (u *Sorted[T, S]) SumBelow(v T) T {
	return u.t.sumBelow(u.t.root, v)
}

func (u *Sorted[T, S]) InOrder(f func(*T) bool) {
	u.t.InOrder(f)
}

func (u *Sorted[T, S]) Values() []T {
	return u.t.Values()
}

func (u *Sorted[T, S]) Clear() {
	u.t.Clear()
}

// Corrupt also reports a sequence that isn't sorted.
func (u *Sorted[T, S]) Corrupt() bool {
	if u.t.Corrupt() {
		return true
	}
	first, sorted := true, true
	var prev T
	u.t.InOrder(func(v *T) bool {
		if !first && *v < prev {
			sorted = false
		}
		first, prev = false, *v
		return sorted
	})
	return !sorted
}
