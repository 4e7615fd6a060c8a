package treaps

import "golang.org/x/exp/constraints"

// Number is a value that can be ordered and summed. Every container in this module aggregates
// its elements with +, so T must be closed under addition and have 0 as its zero value.
type Number interface {
	constraints.Integer | constraints.Float
}
