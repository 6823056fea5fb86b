// Package aggregate computes the per-group statistical series shown
// alongside the raw model lines.
package aggregate

import (
	"github.com/o3as/o3plot/model"
	"github.com/o3as/o3plot/statistics"
)

// Statistic names a computed series. The values double as display
// keys for the chart layer.
type Statistic string

const (
	StatMean            Statistic = "mean"
	StatStd             Statistic = "std"
	StatMedian          Statistic = "median"
	StatLowerPercentile Statistic = "lowerPercentile"
	StatUpperPercentile Statistic = "upperPercentile"
	StatMeanPlusStd     Statistic = "mean+std"
	StatMeanMinusStd    Statistic = "mean-std"

	// statStdMean is the mean restricted to std-included models. It
	// only exists to center the std band and is stripped from the
	// result.
	statStdMean Statistic = "stdMean"
)

// computedStatistics are evaluated directly from the matrix, in this
// order. The derived bands come afterwards.
var computedStatistics = []Statistic{
	StatMean, StatStd, StatMedian, StatLowerPercentile, StatUpperPercentile, statStdMean,
}

// Values holds one group's computed series, each aligned to the same
// index space as the input matrix.
type Values map[Statistic][]*float64

// MatrixBuilder transposes per-model series into a row-major matrix
// over the shared index space: one row per index (year or region),
// one column per model in the given order. Missing values are nil.
type MatrixBuilder func(models []string, data model.ProcessedData) [][]*float64

// YearMatrix builds the matrix for the zonal mean plot: one row per
// year of the implicit axis.
func YearMatrix(models []string, data model.ProcessedData) [][]*float64 {
	matrix := make([][]*float64, model.YearCount)
	for i := range matrix {
		row := make([]*float64, len(models))
		for j, id := range models {
			entry := data[id]
			if entry == nil || i >= len(entry.Years) {
				continue
			}
			row[j] = entry.Years[i]
		}
		matrix[i] = row
	}
	return matrix
}

// RegionMatrix builds the matrix strategy for the return plot: one
// row per region, in the given order.
func RegionMatrix(regions []string) MatrixBuilder {
	return func(models []string, data model.ProcessedData) [][]*float64 {
		matrix := make([][]*float64, len(regions))
		for i, region := range regions {
			row := make([]*float64, len(models))
			for j, id := range models {
				entry := data[id]
				if entry == nil {
					continue
				}
				value, found := entry.Regions[region]
				if !found {
					continue
				}
				row[j] = model.Float(value)
			}
			matrix[i] = row
		}
		return matrix
	}
}

// isIncluded decides whether a model takes part in a statistic.
// Percentile bounds follow the percentile flag, the std-band center
// mean follows the std flag, everything else its own flag.
func isIncluded(stat Statistic, flags model.MemberFlags) bool {
	switch stat {
	case StatMean:
		return flags.Mean
	case StatStd, statStdMean:
		return flags.Std
	case StatMedian:
		return flags.Median
	case StatLowerPercentile, StatUpperPercentile:
		return flags.Percentile
	default:
		return false
	}
}

func apply(stat Statistic, values []float64) (float64, bool) {
	switch stat {
	case StatMean, statStdMean:
		return statistics.Mean(values)
	case StatStd:
		return statistics.Std(values)
	case StatMedian:
		return statistics.Median(values)
	case StatLowerPercentile:
		return statistics.Q25(values)
	case StatUpperPercentile:
		return statistics.Q75(values)
	default:
		return 0, false
	}
}

// Calculate computes all statistic series for one group. members maps
// model id to its inclusion flags; models not present in members are
// excluded from every statistic. An index whose filtered value set is
// empty yields nil, never NaN.
func Calculate(models []string, data model.ProcessedData,
	members map[string]model.MemberFlags, build MatrixBuilder) Values {

	matrix := build(models, data)
	values := make(Values, len(computedStatistics)+2)

	for _, stat := range computedStatistics {
		series := make([]*float64, len(matrix))
		for i, row := range matrix {
			var filtered []float64
			for j, v := range row {
				if v == nil {
					continue
				}
				if !isIncluded(stat, members[models[j]]) {
					continue
				}
				filtered = append(filtered, *v)
			}
			if result, ok := apply(stat, filtered); ok {
				series[i] = model.Float(result)
			}
		}
		values[stat] = series
	}

	values[StatMeanPlusStd] = deriveBand(values[statStdMean], values[StatStd], +1)
	values[StatMeanMinusStd] = deriveBand(values[statStdMean], values[StatStd], -1)
	delete(values, statStdMean)

	return values
}

// deriveBand shifts the std-center mean by sign*std elementwise. A
// nil in either operand makes the band value nil, a partial number is
// never produced.
func deriveBand(center, std []*float64, sign float64) []*float64 {
	band := make([]*float64, len(center))
	for i := range center {
		if i >= len(std) || center[i] == nil || std[i] == nil {
			continue
		}
		band[i] = model.Float(*center[i] + sign**std[i])
	}
	return band
}
