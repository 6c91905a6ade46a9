package math

import "golang.org/x/exp/constraints"

// Max returns the larger of the two values. It works for any numeric
// type (integers and floats).
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
