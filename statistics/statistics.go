package statistics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Numeric primitives for the aggregation engine. Every function
// reports ok=false on an empty input instead of returning NaN, so
// callers can degrade to a null series value.

func Sum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values)
}

func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return stat.Mean(values, nil), true
}

// Std is the population standard deviation.
func Std(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return stat.PopStdDev(values, nil), true
}

// Quantile uses quartile method 1: with the values sorted ascending
// and pos = len*q - 1, a whole pos averages the two neighbouring
// elements, otherwise the element right after floor(pos) is taken.
// The input is copied before sorting, the caller's slice is never
// reordered.
func Quantile(values []float64, q float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := float64(len(sorted))*q - 1
	if pos == math.Trunc(pos) && pos >= 0 && int(pos) < len(sorted) {
		i := int(pos)
		if i+1 >= len(sorted) {
			return 0, false
		}
		return (sorted[i] + sorted[i+1]) / 2, true
	}

	i := int(math.Floor(pos)) + 1
	if i < 0 || i >= len(sorted) {
		return 0, false
	}
	return sorted[i], true
}

func Median(values []float64) (float64, bool) {
	return Quantile(values, 0.5)
}

func Q25(values []float64) (float64, bool) {
	return Quantile(values, 0.25)
}

func Q75(values []float64) (float64, bool) {
	return Quantile(values, 0.75)
}
