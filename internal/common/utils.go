package common

// FloorDiv returns a/b rounded toward negative infinity. b must not be zero.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod returns the modulo of a and b with the sign of b, so the result for
// a positive b is always in [0, b).
func FloorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
