package utils

import "math"

func IntMin(i1, i2 int) int {
	if i1 < i2 {
		return i1
	}
	return i2
}

func IntMax(i1, i2 int) int {
	if i1 > i2 {
		return i1
	}
	return i2
}

// RoundDownToMultipleOfTen floors towards the next lower multiple of
// ten, RoundUpToMultipleOfTen ceils towards the next higher one.
// Values already on a multiple of ten are returned unchanged.
func RoundDownToMultipleOfTen(v float64) int {
	return int(math.Floor(v/10) * 10)
}

func RoundUpToMultipleOfTen(v float64) int {
	return int(math.Ceil(v/10) * 10)
}
