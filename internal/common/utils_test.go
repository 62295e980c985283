package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFloorDivMod verifies floor semantics for negative operands: the
// quotient rounds toward negative infinity and the remainder takes the
// divisor's sign.
func TestFloorDivMod(t *testing.T) {
	tests := []struct {
		a, b     int
		div, mod int
	}{
		{7, 2, 3, 1},
		{-7, 2, -4, 1},
		{7, -2, -4, -1},
		{-7, -2, 3, -1},
		{-1, 4, -1, 3},
		{-1, 7, -1, 6},
		{-8, 4, -2, 0},
		{0, 7, 0, 0},
		{-1999, 100, -20, 1},
		{13, 7, 1, 6},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.div, FloorDiv(tt.a, tt.b), "FloorDiv(%d, %d)", tt.a, tt.b)
		assert.Equal(t, tt.mod, FloorMod(tt.a, tt.b), "FloorMod(%d, %d)", tt.a, tt.b)
		assert.Equal(t, tt.a, FloorDiv(tt.a, tt.b)*tt.b+FloorMod(tt.a, tt.b), "identity for (%d, %d)", tt.a, tt.b)
	}
}

func TestFloorMod_NonNegativeForPositiveDivisor(t *testing.T) {
	for a := -50; a <= 50; a++ {
		m := FloorMod(a, 7)
		assert.GreaterOrEqual(t, m, 0, "a=%d", a)
		assert.Less(t, m, 7, "a=%d", a)
	}
}
