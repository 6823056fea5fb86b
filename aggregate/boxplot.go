package aggregate

import (
	"github.com/montanaflynn/stats"

	"github.com/o3as/o3plot/model"
	"github.com/o3as/o3plot/statistics"
)

// BoxPlot is the 5-number summary of one region's value population.
type BoxPlot struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// BoxPlotValues summarizes, per region, the values of all visible
// models of all visible groups. The per-statistic inclusion flags are
// deliberately ignored: the boxplot reflects the raw visible model
// population. Regions with no values are left out of the result.
func BoxPlotValues(regions []string, data model.ProcessedData,
	groups []model.ModelGroup) map[string]BoxPlot {

	boxes := make(map[string]BoxPlot, len(regions))

	for _, region := range regions {
		var values []float64
		seen := make(map[string]bool)

		for _, group := range groups {
			if !group.IsVisible {
				continue
			}
			for id, flags := range group.Models {
				if !flags.IsVisible || seen[id] {
					continue
				}
				entry := data[id]
				if entry == nil {
					continue
				}
				value, found := entry.Regions[region]
				if !found {
					continue
				}
				seen[id] = true
				values = append(values, value)
			}
		}

		if len(values) == 0 {
			continue
		}

		min, _ := stats.Min(values)
		max, _ := stats.Max(values)
		q1, _ := statistics.Q25(values)
		median, _ := statistics.Median(values)
		q3, _ := statistics.Q75(values)

		boxes[region] = BoxPlot{Min: min, Q1: q1, Median: median, Q3: q3, Max: max}
	}

	return boxes
}
