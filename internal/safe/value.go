// Package safe provides integer clamping helpers for values that feed
// display math, where out-of-range input must degrade instead of wrapping.
package safe

// ClampNonNegative clamps a value to zero if it is negative.
// Returns the clamped value and a boolean indicating whether clamping occurred.
func ClampNonNegative(val int) (int, bool) {
	if val < 0 {
		return 0, true
	}
	return val, false
}

// ClampRange clamps a value into [low, high].
// Returns the clamped value and a boolean indicating whether clamping occurred.
func ClampRange(val, low, high int) (int, bool) {
	if val < low {
		return low, true
	}
	if val > high {
		return high, true
	}
	return val, false
}
