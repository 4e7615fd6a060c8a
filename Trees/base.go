package Trees

import (
	treaps "github.com/g-m-twostay/treaps"
	"github.com/g-m-twostay/treaps/Rand"
	"golang.org/x/exp/constraints"
)

// A node in the arena. Slot 0 is the empty subtree: it is never written, so its sz and sum stay 0
// and l, r point back to itself.
type node[T treaps.Number, S constraints.Unsigned] struct {
	v, sum T
	pri    uint64
	l, r   S
	sz     S
}

// base is an arena of nodes shared by any number of treaps. Subtrees are addressed by the index
// of their root; a subtree is owned by exactly one treap and nodes are never shared between
// subtrees. Released slots form a linked list starting at free, chained through l.
// All operations are iterative; st is the reusable stack of split and merge.
type base[T treaps.Number, S constraints.Unsigned] struct {
	ns   []node[T, S]
	free S
	st   []S
}

// maxHint bounds the slots allocated up front; the arena grows past it on demand.
const maxHint = 1 << 20

func newBase[T treaps.Number, S constraints.Unsigned](hint S) *base[T, S] {
	return &base[T, S]{ns: make([]node[T, S], 1, min(uint64(hint), maxHint)+1)}
}

func (u *base[T, S]) count(t S) S {
	return u.ns[t].sz
}

func (u *base[T, S]) sum(t S) T {
	return u.ns[t].sum
}

// update the aggregates of t from its current children.
func (u *base[T, S]) update(t S) {
	n := &u.ns[t]
	n.sz = u.ns[n.l].sz + u.ns[n.r].sz + 1
	n.sum = u.ns[n.l].sum + u.ns[n.r].sum + n.v
}

// alloc a singleton subtree, reusing a released slot first. Returns false when S can't address
// another slot.
func (u *base[T, S]) alloc(v T, pri uint64) (S, bool) {
	if i := u.free; i != 0 {
		u.free = u.ns[i].l
		u.ns[i] = node[T, S]{v: v, sum: v, pri: pri, sz: 1}
		return i, true
	}
	if uint64(len(u.ns)) > uint64(^S(0)) {
		return 0, false
	}
	u.ns = append(u.ns, node[T, S]{v: v, sum: v, pri: pri, sz: 1})
	return S(len(u.ns) - 1), true
}

// release slot i once. i must be detached from every subtree.
func (u *base[T, S]) release(i S) {
	u.ns[i] = node[T, S]{l: u.free}
	u.free = i
}

// releaseAll nodes of subtree t.
func (u *base[T, S]) releaseAll(t S) {
	st := u.st[:0]
	if t != 0 {
		st = append(st, t)
	}
	for len(st) > 0 {
		t, st = st[len(st)-1], st[:len(st)-1]
		if n := &u.ns[t]; n.l != 0 {
			st = append(st, n.l)
		}
		if n := &u.ns[t]; n.r != 0 {
			st = append(st, n.r)
		}
		u.release(t)
	}
	u.st = st
}

// merge concatenates l and r; every element of l precedes every element of r in the result.
// The root with the larger priority wins, ties go to r. Both inputs are consumed.
// Time: O(D(l)+D(r)); Space: O(1) amortized
func (u *base[T, S]) merge(l, r S) (root S) {
	st := u.st[:0]
	p := &root
	for l != 0 && r != 0 {
		if u.ns[l].pri > u.ns[r].pri {
			*p = l
			st = append(st, l)
			p = &u.ns[l].r
			l = *p
		} else {
			*p = r
			st = append(st, r)
			p = &u.ns[r].l
			r = *p
		}
	}
	if l != 0 {
		*p = l
	} else {
		*p = r
	}
	for i := len(st) - 1; i > -1; i-- {
		u.update(st[i])
	}
	u.st = st
	return
}

// split t into its first k elements and the rest. 0<=k<=count(t). t is consumed.
// Each visited node gives away at most one child link and is updated after relinking.
// Time: O(D(t)); Space: O(1) amortized
func (u *base[T, S]) split(t, k S) (l, r S) {
	st := u.st[:0]
	lp, rp := &l, &r
	for t != 0 {
		st = append(st, t)
		if n := &u.ns[t]; k <= u.ns[n.l].sz {
			*rp = t
			rp = &n.l
			t = n.l
		} else {
			k -= u.ns[n.l].sz + 1
			*lp = t
			lp = &n.r
			t = n.r
		}
	}
	*lp, *rp = 0, 0
	for i := len(st) - 1; i > -1; i-- {
		u.update(st[i])
	}
	u.st = st
	return
}

// insert v with priority pri so that it ends up at position k. 0<=k<=count(t).
// Returns (t, false) if no slot can be allocated; t is untouched in that case.
func (u *base[T, S]) insert(t, k S, v T, pri uint64) (S, bool) {
	i, ok := u.alloc(v, pri)
	if !ok {
		return t, false
	}
	l, r := u.split(t, k)
	return u.merge(u.merge(l, i), r), true
}

// erase the element at position k. 0<=k<count(t).
func (u *base[T, S]) erase(t, k S) S {
	l, r := u.split(t, k)
	m, r := u.split(r, 1)
	u.release(m)
	return u.merge(l, r)
}

// bisect counts the elements strictly less than v, assuming t is sorted in ascending order.
func (u *base[T, S]) bisect(t S, v T) (c S) {
	for t != 0 {
		if n := &u.ns[t]; v <= n.v {
			t = n.l
		} else {
			c += u.ns[n.l].sz + 1
			t = n.r
		}
	}
	return
}

// bisectRight counts the elements less than or equal to v, assuming t is sorted in ascending order.
func (u *base[T, S]) bisectRight(t S, v T) (c S) {
	for t != 0 {
		if n := &u.ns[t]; v < n.v {
			t = n.l
		} else {
			c += u.ns[n.l].sz + 1
			t = n.r
		}
	}
	return
}

// sumBelow is the sum of the elements strictly less than v, assuming t is sorted in ascending order.
func (u *base[T, S]) sumBelow(t S, v T) (s T) {
	for t != 0 {
		if n := &u.ns[t]; v <= n.v {
			t = n.l
		} else {
			s += u.ns[n.l].sum + n.v
			t = n.r
		}
	}
	return
}

// at returns the node at position k, or nil if k>=count(t).
func (u *base[T, S]) at(t, k S) *node[T, S] {
	for t != 0 {
		if n := &u.ns[t]; k < u.ns[n.l].sz {
			t = n.l
		} else if k > u.ns[n.l].sz {
			k -= u.ns[n.l].sz + 1
			t = n.r
		} else {
			return n
		}
	}
	return nil
}

// set the value at position k to v. 0<=k<count(t). Sums on the path are recomputed.
func (u *base[T, S]) set(t, k S, v T) {
	st := u.st[:0]
	for t != 0 {
		st = append(st, t)
		if n := &u.ns[t]; k < u.ns[n.l].sz {
			t = n.l
		} else if k > u.ns[n.l].sz {
			k -= u.ns[n.l].sz + 1
			t = n.r
		} else {
			n.v = v
			break
		}
	}
	for i := len(st) - 1; i > -1; i-- {
		u.update(st[i])
	}
	u.st = st
}

// build a treap holding vs in order with priorities drawn from src. The right spine is kept on
// a stack; a node popped off it is final and gets updated.
// Returns (0, false) if the arena ran out of slots, in which case nothing was kept.
// Time: O(len(vs)).
func (u *base[T, S]) build(vs []T, src Rand.Source) (S, bool) {
	st := u.st[:0]
	ok := true
	for _, v := range vs {
		var i S
		if i, ok = u.alloc(v, src.Next()); !ok {
			break
		}
		var last S
		for len(st) > 0 && u.ns[st[len(st)-1]].pri < u.ns[i].pri {
			last, st = st[len(st)-1], st[:len(st)-1]
			u.update(last)
		}
		u.ns[i].l = last
		if len(st) > 0 {
			u.ns[st[len(st)-1]].r = i
		}
		st = append(st, i)
	}
	for i := len(st) - 1; i > -1; i-- {
		u.update(st[i])
	}
	var root S
	if len(st) > 0 {
		root = st[0]
	}
	u.st = st
	if !ok {
		u.releaseAll(root)
		return 0, false
	}
	return root, true
}

// inOrder calls f on every value of t from left to right until f returns false. st is a buffer
// for the traversal stack and is returned for reuse. f mustn't modify the arena.
func (u *base[T, S]) inOrder(t S, f func(*T) bool, st []S) []S {
	for st = st[:0]; t != 0; t = u.ns[t].l {
		st = append(st, t)
	}
	for len(st) > 0 {
		t, st = st[len(st)-1], st[:len(st)-1]
		if !f(&u.ns[t].v) {
			break
		}
		for t = u.ns[t].r; t != 0; t = u.ns[t].l {
			st = append(st, t)
		}
	}
	return st
}

// corrupt reports whether subtree t violates the heap order, the aggregates, or exclusive
// ownership (a slot reachable twice, or a released slot reachable at all).
func (u *base[T, S]) corrupt(t S) bool {
	if u.ns[0] != (node[T, S]{}) {
		return true
	}
	seen := treaps.NewBitArray(len(u.ns))
	for i := u.free; i != 0; i = u.ns[i].l {
		if seen.Swap(int(i)) {
			return true
		}
	}
	st := make([]S, 0, 64)
	if t != 0 {
		st = append(st, t)
	}
	for len(st) > 0 {
		t, st = st[len(st)-1], st[:len(st)-1]
		if seen.Swap(int(t)) {
			return true
		}
		n := u.ns[t]
		if n.sz != u.ns[n.l].sz+u.ns[n.r].sz+1 || n.sum != u.ns[n.l].sum+u.ns[n.r].sum+n.v {
			return true
		}
		if n.l != 0 {
			if u.ns[n.l].pri > n.pri {
				return true
			}
			st = append(st, n.l)
		}
		if n.r != 0 {
			if u.ns[n.r].pri > n.pri {
				return true
			}
			st = append(st, n.r)
		}
	}
	return false
}

// depth of subtree t, the number of nodes on its longest root-to-leaf path.
func (u *base[T, S]) depth(t S) (d int) {
	type item struct {
		t S
		d int
	}
	st := make([]item, 0, 64)
	if t != 0 {
		st = append(st, item{t, 1})
	}
	for len(st) > 0 {
		it := st[len(st)-1]
		st = st[:len(st)-1]
		d = max(d, it.d)
		if n := &u.ns[it.t]; n.l != 0 {
			st = append(st, item{n.l, it.d + 1})
		}
		if n := &u.ns[it.t]; n.r != 0 {
			st = append(st, item{n.r, it.d + 1})
		}
	}
	return
}
