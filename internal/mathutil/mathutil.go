// Package mathutil holds small pure helpers used by the console driver.
package mathutil

import (
	"cmp"
	"math"
	"slices"
)

// Fibonacci returns the first n Fibonacci numbers starting at 0.
// n = 0 yields an empty slice and n = 1 yields [0]. Terms past the 93rd
// overflow uint64 and wrap.
func Fibonacci(n int) []uint64 {
	switch {
	case n <= 0:
		return []uint64{}
	case n == 1:
		return []uint64{0}
	}

	fib := make([]uint64, 2, n)
	fib[0], fib[1] = 0, 1
	for i := 2; i < n; i++ {
		fib = append(fib, fib[i-1]+fib[i-2])
	}
	return fib
}

// CircleArea returns πr².
func CircleArea(radius float64) float64 {
	return math.Pi * radius * radius
}

// Max returns the largest element, or false for an empty slice.
func Max[T cmp.Ordered](items []T) (T, bool) {
	if len(items) == 0 {
		var zero T
		return zero, false
	}
	return slices.Max(items), true
}
