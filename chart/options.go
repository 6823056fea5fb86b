package chart

import (
	"github.com/o3as/o3plot/model"
	"github.com/o3as/o3plot/utils"
)

// ChartOptions is the fully parameterized chart configuration handed
// to the renderer together with the series.
type ChartOptions struct {
	ChartType string `json:"chartType"`
	Title     string `json:"title"`

	XMin int `json:"xMin,omitempty"`
	XMax int `json:"xMax,omitempty"`
	YMin int `json:"yMin"`
	YMax int `json:"yMax"`

	XTickAmount int `json:"xTickAmount,omitempty"`
	YTickAmount int `json:"yTickAmount"`

	ShowLegend bool `json:"showLegend"`
	ShowGrid   bool `json:"showGrid"`

	Styling Styling `json:"styling"`
}

// OptionsConfig parameterizes option generation. Suggested bounds
// come from the active cache entry, ScreenWidth from the client.
type OptionsConfig struct {
	PlotID      model.PlotID
	Title       string
	Suggested   model.Suggested
	ScreenWidth int
	Styling     Styling
}

// Options merges axis ranges, tick heuristics and styling into the
// plot-type-specific base configuration.
func Options(cfg OptionsConfig) ChartOptions {
	options := baseOptions(cfg.PlotID)
	options.Title = cfg.Title
	options.Styling = cfg.Styling

	if cfg.Suggested.MinY != nil && cfg.Suggested.MaxY != nil {
		options.YMin = utils.RoundDownToMultipleOfTen(*cfg.Suggested.MinY)
		options.YMax = utils.RoundUpToMultipleOfTen(*cfg.Suggested.MaxY)
	}
	options.YTickAmount = yTickAmount(options.YMax - options.YMin)

	if cfg.PlotID == model.PlotZonalMean {
		options.XMin = model.StartYear
		options.XMax = model.EndYear
		if cfg.Suggested.MinX != nil && cfg.Suggested.MaxX != nil {
			options.XMin = utils.RoundDownToMultipleOfTen(*cfg.Suggested.MinX)
			options.XMax = utils.RoundUpToMultipleOfTen(*cfg.Suggested.MaxX)
		}
		options.XTickAmount = xTickAmount(options.XMax-options.XMin, cfg.ScreenWidth)
	}

	return options
}

func baseOptions(plotID model.PlotID) ChartOptions {
	switch plotID {
	case model.PlotReturn:
		return ChartOptions{
			ChartType:  string(SeriesBoxPlot),
			ShowLegend: true,
			ShowGrid:   true,
		}
	default:
		return ChartOptions{
			ChartType:  string(SeriesLine),
			ShowLegend: true,
			ShowGrid:   true,
		}
	}
}

// xTickAmount aims at one label per decade, thinned out on narrow
// screens so labels don't overlap.
func xTickAmount(span, screenWidth int) int {
	if span <= 0 {
		return 1
	}
	step := 10
	switch {
	case screenWidth > 0 && screenWidth < 700:
		step = 40
	case screenWidth > 0 && screenWidth < 1100:
		step = 20
	}
	return utils.IntMax(span/step, 1)
}

// yTickAmount gives small ranges a label every 5 units and large
// ranges one per 10, capped so the axis stays readable.
func yTickAmount(span int) int {
	if span <= 0 {
		return 1
	}
	if span <= 30 {
		return utils.IntMax(span/5, 1)
	}
	return utils.IntMin(span/10, 12)
}
