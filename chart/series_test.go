package chart

import (
	"context"
	"errors"
	"testing"

	"github.com/o3as/o3plot/common"
	"github.com/o3as/o3plot/model"
)

func allStats() model.StatFlags {
	return model.StatFlags{Mean: true, Std: true, Median: true, Percentile: true}
}

func member(flags model.StatFlags) model.MemberFlags {
	return model.MemberFlags{IsVisible: true, StatFlags: flags}
}

func yearEntry(style model.PlotStyle, values map[int]float64) *model.ProcessedEntry {
	years := make(model.YearSeries, model.YearCount)
	for year, v := range values {
		years[year-model.StartYear] = model.Float(v)
	}
	return &model.ProcessedEntry{PlotStyle: style, Years: years}
}

func constantEntry(value float64) *model.ProcessedEntry {
	years := make(model.YearSeries, model.YearCount)
	for i := range years {
		years[i] = model.Float(value)
	}
	return &model.ProcessedEntry{Years: years}
}

func findSeries(data *PlotData, name string) (Series, int, bool) {
	for i, s := range data.Series {
		if s.Name == name {
			return s, i, true
		}
	}
	return Series{}, 0, false
}

func TestGenerateSeriesInvalidPlotID(t *testing.T) {
	_, err := GenerateSeries(context.Background(), Config{PlotID: "nope"})
	if !errors.Is(err, common.ErrInvalidPlotID) {
		t.Errorf("err = %v, want ErrInvalidPlotID", err)
	}
}

func TestGenerateZonalMeanSeries(t *testing.T) {
	data := model.ProcessedData{
		model.ReferenceValueKey: constantEntry(278),
		"p_i_a": yearEntry(model.PlotStyle{Color: "red", Linestyle: "solid"},
			map[int]float64{1960: 280, 1961: 282}),
		"p_i_b": yearEntry(model.PlotStyle{Color: "unknowncolor", Linestyle: "weird"},
			map[int]float64{1960: 284}),
	}
	groups := []model.ModelGroup{{
		ID:           1,
		Name:         "Example Group",
		IsVisible:    true,
		VisibleStats: model.StatFlags{Mean: true},
		Models: map[string]model.MemberFlags{
			"p_i_a": member(allStats()),
			"p_i_b": member(allStats()),
		},
	}}

	out, err := GenerateSeries(context.Background(), Config{
		PlotID:        model.PlotZonalMean,
		Data:          data,
		Groups:        groups,
		ShowReference: true,
		RefYear:       1980,
	})
	if err != nil {
		t.Fatalf("GenerateSeries failed: %v", err)
	}

	// reference first, then models, then statistics
	if out.Series[0].Name != "Reference value" {
		t.Errorf("first series = %q, want reference line", out.Series[0].Name)
	}

	s, i, found := findSeries(out, "p_i_a")
	if !found {
		t.Fatal("model series p_i_a missing")
	}
	if got := s.Years[0]; got == nil || *got != 280 {
		t.Errorf("p_i_a year 1960 = %v, want 280", got)
	}
	if out.Styling.Colors[i] != "#ff0000" {
		t.Errorf("p_i_a color = %v, want #ff0000", out.Styling.Colors[i])
	}

	// unknown style names fall back instead of failing
	_, i, found = findSeries(out, "p_i_b")
	if !found {
		t.Fatal("model series p_i_b missing")
	}
	if out.Styling.Colors[i] != defaultColor || out.Styling.DashArrays[i] != defaultDash {
		t.Errorf("p_i_b styling = %v/%v, want fallback",
			out.Styling.Colors[i], out.Styling.DashArrays[i])
	}

	mean, _, found := findSeries(out, "Mean (Example Group)")
	if !found {
		t.Fatal("mean series missing")
	}
	if got := mean.Years[0]; got == nil || *got != 282 {
		t.Errorf("mean year 1960 = %v, want 282", got)
	}
	if got := mean.Years[1]; got == nil || *got != 282 {
		t.Errorf("mean year 1961 = %v, want 282 (only p_i_a has data)", got)
	}

	if _, _, found := findSeries(out, "Median (Example Group)"); found {
		t.Error("median series should be gated off by the group flag")
	}

	if len(out.Series) != len(out.Styling.Colors) ||
		len(out.Series) != len(out.Styling.Widths) ||
		len(out.Series) != len(out.Styling.DashArrays) {
		t.Error("styling arrays must align with the series list")
	}
}

func TestGenerateZonalMeanHiddenGroup(t *testing.T) {
	data := model.ProcessedData{
		"p_i_a": yearEntry(model.PlotStyle{}, map[int]float64{1960: 280}),
	}
	groups := []model.ModelGroup{{
		ID: 1, Name: "Hidden", IsVisible: false,
		VisibleStats: allStats(),
		Models:       map[string]model.MemberFlags{"p_i_a": member(allStats())},
	}}

	out, err := GenerateSeries(context.Background(), Config{
		PlotID: model.PlotZonalMean,
		Data:   data,
		Groups: groups,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Series) != 0 {
		t.Errorf("hidden group produced %v series", len(out.Series))
	}
}

func TestRecoveryPoints(t *testing.T) {
	// the group mean starts below the reference value and reaches it
	// in 1990
	values := map[int]float64{}
	for year := 1980; year <= 2000; year++ {
		values[year] = 270 + float64(year-1980) // 270, 271, ... hits 278 in 1988
	}
	data := model.ProcessedData{
		model.ReferenceValueKey: constantEntry(278),
		"p_i_a":                 yearEntry(model.PlotStyle{}, values),
	}
	groups := []model.ModelGroup{{
		ID: 1, Name: "G", IsVisible: true,
		VisibleStats: model.StatFlags{Mean: true},
		Models:       map[string]model.MemberFlags{"p_i_a": member(allStats())},
	}}

	out, err := GenerateSeries(context.Background(), Config{
		PlotID:        model.PlotZonalMean,
		Data:          data,
		Groups:        groups,
		ShowReference: true,
		RefYear:       1980,
	})
	if err != nil {
		t.Fatal(err)
	}

	var meanPoint *RecoveryPoint
	for i := range out.RecoveryPoints {
		if out.RecoveryPoints[i].Series == "Mean (G)" {
			meanPoint = &out.RecoveryPoints[i]
		}
	}
	if meanPoint == nil {
		t.Fatal("mean recovery point missing")
	}
	if meanPoint.Year != 1988 {
		t.Errorf("recovery year = %v, want 1988", meanPoint.Year)
	}
}

func TestRecoveryPointsBoundedByMaxYear(t *testing.T) {
	values := map[int]float64{1980: 270, 2050: 290}
	data := model.ProcessedData{
		model.ReferenceValueKey: constantEntry(278),
		"p_i_a":                 yearEntry(model.PlotStyle{}, values),
	}
	groups := []model.ModelGroup{{
		ID: 1, Name: "G", IsVisible: true,
		VisibleStats: model.StatFlags{Mean: true},
		Models:       map[string]model.MemberFlags{"p_i_a": member(allStats())},
	}}

	out, err := GenerateSeries(context.Background(), Config{
		PlotID:        model.PlotZonalMean,
		Data:          data,
		Groups:        groups,
		ShowReference: true,
		RefYear:       1980,
		MaxYear:       2000,
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range out.RecoveryPoints {
		if p.Year > 2000 {
			t.Errorf("recovery point %v beyond the visible max year", p)
		}
	}
}

func TestGenerateReturnSeries(t *testing.T) {
	data := model.ProcessedData{
		"p_i_a": {
			PlotStyle: model.PlotStyle{Color: "blue", Linestyle: "solid"},
			Regions:   map[string]float64{"Antarctic(Oct)": 2064, "SH mid-lat": 2051},
		},
		"p_i_b": {
			PlotStyle: model.PlotStyle{Color: "green", Linestyle: "dashed"},
			Regions:   map[string]float64{"Antarctic(Oct)": 2058, "SH mid-lat": 2150},
		},
	}
	groups := []model.ModelGroup{{
		ID: 1, Name: "G", IsVisible: true,
		VisibleStats: model.StatFlags{Median: true},
		Models: map[string]model.MemberFlags{
			"p_i_a": member(allStats()),
			"p_i_b": member(allStats()),
		},
	}}

	out, err := GenerateSeries(context.Background(), Config{
		PlotID:  model.PlotReturn,
		Data:    data,
		Groups:  groups,
		Regions: []string{"Antarctic(Oct)", "SH mid-lat"},
		YMin:    model.Float(2000),
		YMax:    model.Float(2100),
	})
	if err != nil {
		t.Fatal(err)
	}

	if out.Series[0].Type != SeriesBoxPlot {
		t.Errorf("first series type = %v, want the boxplot", out.Series[0].Type)
	}
	for _, box := range out.Series[0].Boxes {
		v := box.Values
		if !(v[0] <= v[1] && v[1] <= v[2] && v[2] <= v[3] && v[3] <= v[4]) {
			t.Errorf("box for %v not ordered: %v", box.Region, v)
		}
	}

	s, _, found := findSeries(out, "p_i_b")
	if !found {
		t.Fatal("scatter series p_i_b missing")
	}
	if s.Points[0].Value == nil || *s.Points[0].Value != 2058 {
		t.Errorf("p_i_b Antarctic = %v, want 2058", s.Points[0].Value)
	}
	// 2150 is outside the active y-range and must become a gap
	if s.Points[1].Value != nil {
		t.Errorf("p_i_b SH mid-lat = %v, want nil (clamped)", *s.Points[1].Value)
	}

	median, _, found := findSeries(out, "Median (G)")
	if !found {
		t.Fatal("median scatter missing")
	}
	if len(median.Points) != 2 {
		t.Fatalf("median points = %v, want one per selected region", len(median.Points))
	}
	// median of {2058, 2064} averages the two central values
	if median.Points[0].Value == nil || *median.Points[0].Value != 2061 {
		t.Errorf("median Antarctic = %v, want 2061", median.Points[0].Value)
	}
}

func TestGenerateReturnFiltersRegions(t *testing.T) {
	data := model.ProcessedData{
		"p_i_a": {Regions: map[string]float64{"kept": 2050, "dropped": 2060}},
	}
	groups := []model.ModelGroup{{
		ID: 1, Name: "G", IsVisible: true,
		Models: map[string]model.MemberFlags{"p_i_a": member(allStats())},
	}}

	out, err := GenerateSeries(context.Background(), Config{
		PlotID:  model.PlotReturn,
		Data:    data,
		Groups:  groups,
		Regions: []string{"kept"},
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, s := range out.Series {
		for _, p := range s.Points {
			if p.Region == "dropped" {
				t.Error("unselected region leaked into series")
			}
		}
		for _, b := range s.Boxes {
			if b.Region == "dropped" {
				t.Error("unselected region leaked into boxplot")
			}
		}
	}
}

func TestColorAndStrokeLookups(t *testing.T) {
	if hex, ok := ColorNameToHex("Red"); !ok || hex != "#ff0000" {
		t.Errorf("ColorNameToHex(Red) = %v, %v", hex, ok)
	}
	if hex, ok := ColorNameToHex("#123abc"); !ok || hex != "#123abc" {
		t.Errorf("hex passthrough = %v, %v", hex, ok)
	}
	if _, ok := ColorNameToHex("notacolor"); ok {
		t.Error("unknown color must report not found, not fail")
	}
	if dash, ok := StrokeStyle("solid"); !ok || dash != 0 {
		t.Errorf("StrokeStyle(solid) = %v, %v", dash, ok)
	}
	if _, ok := StrokeStyle("zigzag"); ok {
		t.Error("unknown linestyle must report not found")
	}
}
