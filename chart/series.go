// Package chart combines raw model data and group statistics into
// chart-ready series descriptors and plot options. It only produces
// descriptors, rendering happens elsewhere.
package chart

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/o3as/o3plot/aggregate"
	"github.com/o3as/o3plot/common"
	"github.com/o3as/o3plot/model"
	"github.com/o3as/o3plot/utils"
)

type SeriesType string

const (
	SeriesLine    SeriesType = "line"
	SeriesScatter SeriesType = "scatter"
	SeriesBoxPlot SeriesType = "boxPlot"
)

// Point is one region's value in a scatter series. A nil value marks
// a gap (missing or clamped away).
type Point struct {
	Region string   `json:"region"`
	Value  *float64 `json:"value"`
}

// Box is one region's 5-number summary, ordered min, q1, median, q3,
// max.
type Box struct {
	Region string     `json:"region"`
	Values [5]float64 `json:"values"`
}

// Series is one renderable data series. Years is set for zonal mean
// lines, Points for return plot scatters, Boxes for the boxplot.
type Series struct {
	Name   string           `json:"name"`
	Type   SeriesType       `json:"type"`
	Years  model.YearSeries `json:"years,omitempty"`
	Points []Point          `json:"points,omitempty"`
	Boxes  []Box            `json:"boxes,omitempty"`
}

// Styling carries per-series style arrays, index-aligned with the
// series list.
type Styling struct {
	Colors     []string `json:"colors"`
	Widths     []int    `json:"widths"`
	DashArrays []int    `json:"dashArrays"`
}

// RecoveryPoint marks the first year after the reference year where a
// statistical series crosses the reference value.
type RecoveryPoint struct {
	Series string `json:"series"`
	Year   int    `json:"year"`
}

// PlotData is the full chart-ready output of series generation.
type PlotData struct {
	Series         []Series        `json:"series"`
	Styling        Styling         `json:"styling"`
	RecoveryPoints []RecoveryPoint `json:"recoveryPoints,omitempty"`
}

// Config parameterizes series generation for one render.
type Config struct {
	PlotID model.PlotID
	Data   model.ProcessedData
	Groups []model.ModelGroup

	// zonal mean settings
	ShowReference bool
	RefYear       int
	MaxYear       int // recovery scan bound, 0 means the end of the axis

	// return plot settings
	Regions []string
	YMin    *float64
	YMax    *float64
}

// GenerateSeries builds all series for the configured plot type.
func GenerateSeries(ctx context.Context, cfg Config) (*PlotData, error) {
	logger := utils.GetLogger(ctx)

	var out *PlotData
	switch cfg.PlotID {
	case model.PlotZonalMean:
		out = generateZonalMean(cfg)
	case model.PlotReturn:
		out = generateReturn(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidPlotID, cfg.PlotID)
	}

	logger.Info("series generated",
		zap.String("plotId", string(cfg.PlotID)),
		zap.Int("seriesCount", len(out.Series)))
	return out, nil
}

func (d *PlotData) appendSeries(s Series, color string, width, dash int) {
	d.Series = append(d.Series, s)
	d.Styling.Colors = append(d.Styling.Colors, color)
	d.Styling.Widths = append(d.Styling.Widths, width)
	d.Styling.DashArrays = append(d.Styling.DashArrays, dash)
}

// sortedVisibleModels returns the group's visible member ids in
// stable order.
func sortedVisibleModels(group model.ModelGroup) []string {
	ids := make([]string, 0, len(group.Models))
	for id, flags := range group.Models {
		if flags.IsVisible {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// sortedMembers returns every member id regardless of visibility, for
// statistic computation where only the per-statistic flags decide.
func sortedMembers(group model.ModelGroup) []string {
	ids := make([]string, 0, len(group.Models))
	for id := range group.Models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func modelStyle(style model.PlotStyle) (string, int) {
	color, found := ColorNameToHex(style.Color)
	if !found {
		color = defaultColor
	}
	dash, found := StrokeStyle(style.Linestyle)
	if !found {
		dash = defaultDash
	}
	return color, dash
}

func generateZonalMean(cfg Config) *PlotData {
	out := &PlotData{}

	refEntry := cfg.Data[model.ReferenceValueKey]
	if cfg.ShowReference && refEntry != nil {
		color, dash := modelStyle(refEntry.PlotStyle)
		out.appendSeries(Series{
			Name:  "Reference value",
			Type:  SeriesLine,
			Years: refEntry.Years,
		}, color, refLineWidth, dash)
	}

	for _, group := range cfg.Groups {
		if !group.IsVisible {
			continue
		}
		for _, id := range sortedVisibleModels(group) {
			entry := cfg.Data[id]
			if entry == nil {
				continue
			}
			color, dash := modelStyle(entry.PlotStyle)
			out.appendSeries(Series{
				Name:  id,
				Type:  SeriesLine,
				Years: entry.Years,
			}, color, modelLineWidth, dash)
		}
	}

	statValues := appendStatisticalSeries(out, cfg, aggregate.YearMatrix,
		func(values []*float64) Series {
			return Series{Type: SeriesLine, Years: values}
		})

	if refEntry != nil {
		out.RecoveryPoints = recoveryPoints(cfg, refEntry, statValues)
	}

	return out
}

func generateReturn(cfg Config) *PlotData {
	out := &PlotData{}

	boxes := aggregate.BoxPlotValues(cfg.Regions, cfg.Data, cfg.Groups)
	boxSeries := Series{Name: "Box plot", Type: SeriesBoxPlot}
	for _, region := range cfg.Regions {
		box, found := boxes[region]
		if !found {
			continue
		}
		boxSeries.Boxes = append(boxSeries.Boxes, Box{
			Region: region,
			Values: [5]float64{box.Min, box.Q1, box.Median, box.Q3, box.Max},
		})
	}
	out.appendSeries(boxSeries, defaultBoxColor, modelLineWidth, defaultDash)

	for _, group := range cfg.Groups {
		if !group.IsVisible {
			continue
		}
		for _, id := range sortedVisibleModels(group) {
			entry := cfg.Data[id]
			if entry == nil {
				continue
			}
			points := make([]Point, len(cfg.Regions))
			for i, region := range cfg.Regions {
				points[i] = Point{Region: region}
				value, found := entry.Regions[region]
				if !found {
					continue
				}
				// out-of-range points become gaps so they don't
				// show up in the legend
				if (cfg.YMin != nil && value < *cfg.YMin) ||
					(cfg.YMax != nil && value > *cfg.YMax) {
					continue
				}
				points[i].Value = model.Float(value)
			}
			color, dash := modelStyle(entry.PlotStyle)
			out.appendSeries(Series{
				Name:   id,
				Type:   SeriesScatter,
				Points: points,
			}, color, modelLineWidth, dash)
		}
	}

	appendStatisticalSeries(out, cfg, aggregate.RegionMatrix(cfg.Regions),
		func(values []*float64) Series {
			points := make([]Point, len(cfg.Regions))
			for i, region := range cfg.Regions {
				points[i] = Point{Region: region}
				if i < len(values) {
					points[i].Value = values[i]
				}
			}
			return Series{Type: SeriesScatter, Points: points}
		})

	return out
}

// appendStatisticalSeries computes and appends each group's visible
// statistic series. It returns the computed values per group for
// further derivation (recovery points).
func appendStatisticalSeries(out *PlotData, cfg Config, build aggregate.MatrixBuilder,
	makeSeries func([]*float64) Series) map[int]aggregate.Values {

	byGroup := make(map[int]aggregate.Values, len(cfg.Groups))

	for _, group := range cfg.Groups {
		if !group.IsVisible {
			continue
		}

		values := aggregate.Calculate(sortedMembers(group), cfg.Data, group.Models, build)
		byGroup[group.ID] = values

		for _, stat := range displayedStatistics {
			if !statVisible(group.VisibleStats, stat) {
				continue
			}
			style := statStyles[stat]
			series := makeSeries(values[stat])
			series.Name = fmt.Sprintf("%s (%s)", statDisplayNames[stat], group.Name)
			out.appendSeries(series, style.color, statLineWidth, style.dash)
		}
	}

	return byGroup
}

// displayedStatistics is the render order. The raw std series itself
// is never shown, only the derived bands.
var displayedStatistics = []aggregate.Statistic{
	aggregate.StatMean,
	aggregate.StatMedian,
	aggregate.StatLowerPercentile,
	aggregate.StatUpperPercentile,
	aggregate.StatMeanPlusStd,
	aggregate.StatMeanMinusStd,
}

var statDisplayNames = map[aggregate.Statistic]string{
	aggregate.StatMean:            "Mean",
	aggregate.StatMedian:          "Median",
	aggregate.StatLowerPercentile: "Lower percentile",
	aggregate.StatUpperPercentile: "Upper percentile",
	aggregate.StatMeanPlusStd:     "Mean+Std",
	aggregate.StatMeanMinusStd:    "Mean-Std",
}

// statStyles is a fixed lookup, statistic styling is not computed.
var statStyles = map[aggregate.Statistic]struct {
	color string
	dash  int
}{
	aggregate.StatMean:            {"#696969", 0},
	aggregate.StatMedian:          {"#000000", 1},
	aggregate.StatLowerPercentile: {"#1e8209", 3},
	aggregate.StatUpperPercentile: {"#1e8209", 3},
	aggregate.StatMeanPlusStd:     {"#0e4e78", 5},
	aggregate.StatMeanMinusStd:    {"#0e4e78", 5},
}

func statVisible(flags model.StatFlags, stat aggregate.Statistic) bool {
	switch stat {
	case aggregate.StatMean:
		return flags.Mean
	case aggregate.StatMedian:
		return flags.Median
	case aggregate.StatLowerPercentile, aggregate.StatUpperPercentile:
		return flags.Percentile
	case aggregate.StatMeanPlusStd, aggregate.StatMeanMinusStd:
		return flags.Std
	default:
		return false
	}
}

// recoveryStatistics are scanned for the first crossing of the
// reference value after the reference year.
var recoveryStatistics = []aggregate.Statistic{
	aggregate.StatMean,
	aggregate.StatMeanPlusStd,
	aggregate.StatMeanMinusStd,
}

func recoveryPoints(cfg Config, refEntry *model.ProcessedEntry,
	statValues map[int]aggregate.Values) []RecoveryPoint {

	refValue, found := firstValue(refEntry.Years)
	if !found {
		return nil
	}

	maxYear := cfg.MaxYear
	if maxYear == 0 || maxYear > model.EndYear {
		maxYear = model.EndYear
	}

	var points []RecoveryPoint
	for _, group := range cfg.Groups {
		if !group.IsVisible {
			continue
		}
		values := statValues[group.ID]
		for _, stat := range recoveryStatistics {
			year, found := firstCrossing(values[stat], refValue, cfg.RefYear, maxYear)
			if !found {
				continue
			}
			points = append(points, RecoveryPoint{
				Series: fmt.Sprintf("%s (%s)", statDisplayNames[stat], group.Name),
				Year:   year,
			})
		}
	}
	return points
}

func firstValue(series model.YearSeries) (float64, bool) {
	for _, v := range series {
		if v != nil {
			return *v, true
		}
	}
	return 0, false
}

// firstCrossing scans the years after refYear for the first index
// where the series reaches the reference value from the other side.
// Nil gaps are skipped, the last seen value carries over.
func firstCrossing(series []*float64, refValue float64, refYear, maxYear int) (int, bool) {
	start := refYear - model.StartYear
	if start < 0 {
		start = 0
	}
	end := maxYear - model.StartYear
	if end >= len(series) {
		end = len(series) - 1
	}

	var prev *float64
	if start < len(series) {
		prev = series[start]
	}

	for i := start + 1; i <= end; i++ {
		cur := series[i]
		if cur == nil {
			continue
		}
		if prev != nil {
			crossed := (*prev < refValue && *cur >= refValue) ||
				(*prev > refValue && *cur <= refValue)
			if crossed {
				return model.StartYear + i, true
			}
		}
		prev = cur
	}
	return 0, false
}
