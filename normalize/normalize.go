// Package normalize reshapes raw API responses into the dense,
// uniformly indexed form the aggregation engine works on.
package normalize

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/o3as/o3plot/common"
	"github.com/o3as/o3plot/model"
)

// Years places sparse (year, value) pairs onto the implicit axis
// [StartYear, EndYear]. The input may be unordered or have gaps: each
// axis year is looked up by value, not walked with a cursor. Years
// absent from xValues come out nil.
func Years(xValues []string, yValues []float64) model.YearSeries {
	lookup := make(map[string]int, len(xValues))
	for i, x := range xValues {
		if _, exists := lookup[x]; exists {
			continue
		}
		lookup[x] = i
	}

	series := make(model.YearSeries, model.YearCount)
	for year := model.StartYear; year <= model.EndYear; year++ {
		idx, found := lookup[strconv.Itoa(year)]
		if !found || idx >= len(yValues) {
			continue
		}
		series[year-model.StartYear] = model.Float(yValues[idx])
	}
	return series
}

// PreTransform converts the raw data of one fetch into ProcessedData
// keyed by model id, computing per-entry suggested axis bounds along
// the way.
func PreTransform(plotID model.PlotID, rawData []model.RawDatum) (model.ProcessedData, error) {
	switch plotID {
	case model.PlotZonalMean:
		return transformZonalMean(rawData), nil
	case model.PlotReturn:
		return transformReturn(rawData), nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidPlotID, plotID)
	}
}

func transformZonalMean(rawData []model.RawDatum) model.ProcessedData {
	processed := make(model.ProcessedData, len(rawData))

	for _, datum := range rawData {
		var series model.YearSeries
		if datum.Model == model.ReferenceValueKey && len(datum.Y) > 0 {
			// the reference measurement is a single constant value,
			// stretched across the whole year span
			series = broadcast(datum.Y[0])
		} else {
			series = Years(datum.X, datum.Y)
		}

		processed[datum.Model] = &model.ProcessedEntry{
			PlotStyle: datum.PlotStyle,
			Years:     series,
			Suggested: suggestedZonalMean(datum.X, series),
		}
	}
	return processed
}

func transformReturn(rawData []model.RawDatum) model.ProcessedData {
	processed := make(model.ProcessedData, len(rawData))

	for _, datum := range rawData {
		regions := make(map[string]float64, len(datum.X))
		for i, region := range datum.X {
			if i >= len(datum.Y) {
				break
			}
			regions[region] = datum.Y[i]
		}

		processed[datum.Model] = &model.ProcessedEntry{
			PlotStyle: datum.PlotStyle,
			Regions:   regions,
			Suggested: suggestedReturn(datum.Y),
		}
	}
	return processed
}

func broadcast(value float64) model.YearSeries {
	series := make(model.YearSeries, model.YearCount)
	for i := range series {
		series[i] = model.Float(value)
	}
	return series
}

// suggestedZonalMean derives x bounds from the datum's own year list
// and y bounds from its non-nil values.
func suggestedZonalMean(xValues []string, series model.YearSeries) model.Suggested {
	var suggested model.Suggested

	var years []float64
	for _, x := range xValues {
		year, err := strconv.Atoi(x)
		if err != nil {
			continue
		}
		years = append(years, float64(year))
	}
	if len(years) > 0 {
		suggested.MinX = model.Float(floats.Min(years))
		suggested.MaxX = model.Float(floats.Max(years))
	}

	var values []float64
	for _, v := range series {
		if v == nil {
			continue
		}
		values = append(values, *v)
	}
	if len(values) > 0 {
		suggested.MinY = model.Float(floats.Min(values))
		suggested.MaxY = model.Float(floats.Max(values))
	}
	return suggested
}

// suggestedReturn has no x bounds, the return plot's x axis is
// categorical.
func suggestedReturn(yValues []float64) model.Suggested {
	var suggested model.Suggested
	if len(yValues) > 0 {
		suggested.MinY = model.Float(floats.Min(yValues))
		suggested.MaxY = model.Float(floats.Max(yValues))
	}
	return suggested
}

// Merge copies the entries of src into dst, overwriting models that
// are already present. Accumulation is additive, dst only ever grows.
func Merge(dst, src model.ProcessedData) {
	for id, entry := range src {
		dst[id] = entry
	}
}
