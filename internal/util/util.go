package util

import "golang.org/x/exp/constraints"

// Min returns the smaller of two ordered values.
func Min[A constraints.Ordered](a, b A) A {
	if a > b {
		return b
	}
	return a
}

// Max returns the larger of two ordered values.
func Max[A constraints.Ordered](a, b A) A {
	if a < b {
		return b
	}
	return a
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp[A constraints.Ordered](v, lo, hi A) A {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
