package Trees

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when an index or a range bound lies beyond the sequence.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidRange is returned for a range [l,r) with l>r.
	ErrInvalidRange = errors.New("invalid range")
	// ErrFull is returned when the index type can't address another element.
	ErrFull = errors.New("index type exhausted")
)

// RangeError describes the arguments of a rejected call. It unwraps to one of the sentinel errors.
// Positional calls report the index k as the range [k,k+1), insertion points as [k,k).
type RangeError struct {
	Op        string
	L, R, Len uint64
	Err       error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s [%d,%d) of %d: %v", e.Op, e.L, e.R, e.Len, e.Err)
}

func (e *RangeError) Unwrap() error {
	return e.Err
}
