package Trees

import (
	treaps "github.com/g-m-twostay/treaps"
	"github.com/g-m-twostay/treaps/Rand"
	"golang.org/x/exp/constraints"
)

// Treap is a sequence of numbers backed by an implicit key treap: a binary tree ordered by
// position whose shape is a max-heap on random priorities. Every operation is a composition of
// split and merge, so the expected depth D of the tree is O(log n) for any sequence of calls.
// T is the type of the values, S is the type used for positions, sizes and arena indexes; a Treap
// can't hold more than ^S(0) elements in total with every treap sharing its arena.
//
// A Treap also works as a sorted multiset when every element is added with OrderedInsert, see
// Sorted for a type that enforces that.
// Treaps obtained from Split share the arena of the original, none of them are safe for
// concurrent use.
type Treap[T treaps.Number, S constraints.Unsigned] struct {
	*base[T, S]
	src  Rand.Source
	root S
}

var _ Sequence[int64, uint32] = (*Treap[int64, uint32])(nil)

// priorityLabel names the default priority stream. It is kept apart from Rand.New so values a
// caller draws from the default stream don't line up with the priorities of their nodes.
const priorityLabel = "Trees/priorities"

// New empty treap drawing priorities from Rand.FromLabel(priorityLabel). hint is the expected
// number of elements.
func New[T treaps.Number, S constraints.Unsigned](hint S) *Treap[T, S] {
	return NewWith[T, S](Rand.FromLabel(priorityLabel), hint)
}

// NewWith empty treap drawing priorities from src. The treap takes ownership of src.
func NewWith[T treaps.Number, S constraints.Unsigned](src Rand.Source, hint S) *Treap[T, S] {
	return &Treap[T, S]{base: newBase[T, S](hint), src: src}
}

// From builds a treap holding vs in the same order.
// Time: O(len(vs)).
func From[T treaps.Number, S constraints.Unsigned](src Rand.Source, vs []T) (*Treap[T, S], error) {
	if uint64(len(vs)) > uint64(^S(0)) {
		return nil, &RangeError{"from", 0, uint64(len(vs)), uint64(^S(0)), ErrFull}
	}
	u := NewWith[T, S](src, S(len(vs)))
	u.root, _ = u.build(vs, src)
	return u, nil
}

// Len of the sequence.
// Time: O(1)
func (u *Treap[T, S]) Len() S {
	return u.count(u.root)
}

func (u *Treap[T, S]) checkPos(op string, k, n S) error {
	if k > n {
		return &RangeError{op, uint64(k), uint64(k), uint64(u.Len()), ErrIndexOutOfRange}
	}
	return nil
}

func (u *Treap[T, S]) checkIndex(op string, k S) error {
	if k >= u.Len() {
		return &RangeError{op, uint64(k), uint64(k) + 1, uint64(u.Len()), ErrIndexOutOfRange}
	}
	return nil
}

func (u *Treap[T, S]) checkRange(op string, l, r S) error {
	if l > r {
		return &RangeError{op, uint64(l), uint64(r), uint64(u.Len()), ErrInvalidRange}
	} else if r > u.Len() {
		return &RangeError{op, uint64(l), uint64(r), uint64(u.Len()), ErrIndexOutOfRange}
	}
	return nil
}

// Insert v at position k, 0<=k<=Len(). The new element gets a fresh priority from the generator.
// Time: O(D)
func (u *Treap[T, S]) Insert(k S, v T) error {
	if err := u.checkPos("insert", k, u.Len()); err != nil {
		return err
	}
	t, ok := u.insert(u.root, k, v, u.src.Next())
	if !ok {
		return &RangeError{"insert", uint64(k), uint64(k), uint64(u.Len()), ErrFull}
	}
	u.root = t
	return nil
}

// Erase the element at position k, 0<=k<Len().
// Time: O(D)
func (u *Treap[T, S]) Erase(k S) error {
	if err := u.checkIndex("erase", k); err != nil {
		return err
	}
	u.root = u.erase(u.root, k)
	return nil
}

// OrderedInsert v at LowerBound(0, Len(), v). The sequence stays sorted in ascending order only
// if every element in its history was added this way.
// Time: O(D)
func (u *Treap[T, S]) OrderedInsert(v T) error {
	return u.Insert(u.bisect(u.root, v), v)
}

// LowerBound is the absolute position in [l,r] at which v would be inserted to keep the window
// [l,r) sorted, that is l plus the number of elements in [l,r) less than v. The window must
// already be sorted in ascending order for the result to mean anything.
// Time: O(D)
func (u *Treap[T, S]) LowerBound(l, r S, v T) (S, error) {
	if err := u.checkRange("lower bound", l, r); err != nil {
		return 0, err
	}
	a, b := u.split(u.root, l)
	b, c := u.split(b, r-l)
	k := l + u.bisect(b, v)
	u.root = u.merge(a, u.merge(b, c))
	return k, nil
}

// Sum of the elements at positions [l,r), 0<=l<=r<=Len().
// Time: O(D)
func (u *Treap[T, S]) Sum(l, r S) (T, error) {
	if err := u.checkRange("sum", l, r); err != nil {
		return 0, err
	}
	a, b := u.split(u.root, l)
	b, c := u.split(b, r-l)
	s := u.sum(b)
	u.root = u.merge(u.merge(a, b), c)
	return s, nil
}

// Get the element at position k, 0<=k<Len(). The result is the same as Sum(k,k+1), but the tree
// is only walked, not restructured.
// Time: O(D); Space: O(1)
func (u *Treap[T, S]) Get(k S) (T, error) {
	if err := u.checkIndex("get", k); err != nil {
		return 0, err
	}
	return u.at(u.root, k).v, nil
}

// Set the element at position k to v, 0<=k<Len(). Its priority is kept.
// Time: O(D)
func (u *Treap[T, S]) Set(k S, v T) error {
	if err := u.checkIndex("set", k); err != nil {
		return err
	}
	u.set(u.root, k, v)
	return nil
}

// Split the sequence into [0,k) and [k,Len()), 0<=k<=Len(). u is left empty. Both halves share
// the arena of u and each gets a copy of the current state of the generator, so they go on to
// draw the same priorities.
// Time: O(D)
func (u *Treap[T, S]) Split(k S) (*Treap[T, S], *Treap[T, S], error) {
	if err := u.checkPos("split", k, u.Len()); err != nil {
		return nil, nil, err
	}
	a, b := u.split(u.root, k)
	u.root = 0
	return &Treap[T, S]{u.base, u.src.Clone(), a}, &Treap[T, S]{u.base, u.src.Clone(), b}, nil
}

// Join appends the elements of o after those of u, leaving o empty. When o lives in another
// arena its elements are copied over with fresh priorities, in O(o.Len()).
// Time: O(D) when sharing an arena.
func (u *Treap[T, S]) Join(o *Treap[T, S]) error {
	if o == u {
		return nil
	}
	if o.base == u.base {
		u.root = u.merge(u.root, o.root)
		o.root = 0
		return nil
	}
	if uint64(o.Len()) > uint64(^S(0))-uint64(u.Len()) {
		return &RangeError{"join", uint64(u.Len()), uint64(u.Len()) + uint64(o.Len()), uint64(u.Len()), ErrFull}
	}
	t, ok := u.build(o.Values(), u.src)
	if !ok {
		return &RangeError{"join", uint64(u.Len()), uint64(u.Len()) + uint64(o.Len()), uint64(u.Len()), ErrFull}
	}
	u.root = u.merge(u.root, t)
	o.Clear()
	return nil
}

// Clear the treap, releasing its nodes to the arena.
// Time: O(Len())
func (u *Treap[T, S]) Clear() {
	u.releaseAll(u.root)
	u.root = 0
}

// InOrder calls f with the elements from position 0 onwards until f returns false.
func (u *Treap[T, S]) InOrder(f func(*T) bool) {
	u.inOrder(u.root, f, nil)
}

// Values of the sequence in order.
func (u *Treap[T, S]) Values() []T {
	vs := make([]T, 0, u.Len())
	u.InOrder(func(v *T) bool {
		vs = append(vs, *v)
		return true
	})
	return vs
}

func (u *Treap[T, S]) Corrupt() bool {
	return u.corrupt(u.root)
}

// Depth of the tree; an empty treap has depth 0.
func (u *Treap[T, S]) Depth() int {
	return u.depth(u.root)
}
