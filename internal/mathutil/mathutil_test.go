package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFibonacci(t *testing.T) {
	tests := []struct {
		n    int
		want []uint64
	}{
		{-1, []uint64{}},
		{0, []uint64{}},
		{1, []uint64{0}},
		{2, []uint64{0, 1}},
		{10, []uint64{0, 1, 1, 2, 3, 5, 8, 13, 21, 34}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Fibonacci(tt.n), "Fibonacci(%d)", tt.n)
	}
}

func TestCircleArea(t *testing.T) {
	assert.InDelta(t, 78.5398, CircleArea(5), 0.0001)
	assert.Zero(t, CircleArea(0))
	assert.InDelta(t, math.Pi, CircleArea(-1), 1e-12)
}

func TestMax(t *testing.T) {
	got, ok := Max([]int{1, 5, 3, 9, 2, 8})
	assert.True(t, ok)
	assert.Equal(t, 9, got)

	s, ok := Max([]string{"pear", "apple", "zucchini"})
	assert.True(t, ok)
	assert.Equal(t, "zucchini", s)

	_, ok = Max([]float64{})
	assert.False(t, ok)
}
