package normalize

import (
	"errors"
	"testing"

	"github.com/o3as/o3plot/common"
	"github.com/o3as/o3plot/model"
)

func TestYearsDensity(t *testing.T) {
	series := Years([]string{"1960", "1964"}, []float64{5, 9})

	if len(series) != model.YearCount {
		t.Fatalf("series length = %v, want %v", len(series), model.YearCount)
	}
	for i, v := range series {
		switch i {
		case 0:
			if v == nil || *v != 5 {
				t.Errorf("series[0] = %v, want 5", v)
			}
		case 4:
			if v == nil || *v != 9 {
				t.Errorf("series[4] = %v, want 9", v)
			}
		default:
			if v != nil {
				t.Errorf("series[%v] = %v, want nil", i, *v)
			}
		}
	}
}

func TestYearsUnorderedInput(t *testing.T) {
	// non-monotonic input must land on the right axis positions
	series := Years([]string{"1990", "1961", "2100"}, []float64{3, 1, 7})

	checks := map[int]float64{
		1990 - model.StartYear: 3,
		1961 - model.StartYear: 1,
		2100 - model.StartYear: 7,
	}
	for idx, want := range checks {
		if series[idx] == nil || *series[idx] != want {
			t.Errorf("series[%v] = %v, want %v", idx, series[idx], want)
		}
	}
}

func TestYearsOutOfRangeIgnored(t *testing.T) {
	series := Years([]string{"1901", "3000", "not-a-year"}, []float64{1, 2, 3})
	for i, v := range series {
		if v != nil {
			t.Fatalf("series[%v] = %v, want all nil", i, *v)
		}
	}
}

func TestPreTransformZonalMean(t *testing.T) {
	raw := []model.RawDatum{{
		Model:     "CCMI-1_ACCESS_ACCESS-CCM-refC2",
		PlotStyle: model.PlotStyle{Color: "purple", Linestyle: "solid"},
		X:         []string{"1965", "1970"},
		Y:         []float64{280.5, 281.9},
	}}

	processed, err := PreTransform(model.PlotZonalMean, raw)
	if err != nil {
		t.Fatalf("PreTransform failed: %v", err)
	}

	entry := processed["CCMI-1_ACCESS_ACCESS-CCM-refC2"]
	if entry == nil {
		t.Fatal("entry missing")
	}
	if entry.PlotStyle.Color != "purple" {
		t.Errorf("plot style not passed through: %+v", entry.PlotStyle)
	}
	if got := entry.Years[1965-model.StartYear]; got == nil || *got != 280.5 {
		t.Errorf("year 1965 = %v, want 280.5", got)
	}

	s := entry.Suggested
	if s.MinX == nil || *s.MinX != 1965 || s.MaxX == nil || *s.MaxX != 1970 {
		t.Errorf("suggested x bounds = %+v, want 1965..1970", s)
	}
	if s.MinY == nil || *s.MinY != 280.5 || s.MaxY == nil || *s.MaxY != 281.9 {
		t.Errorf("suggested y bounds = %+v, want 280.5..281.9", s)
	}
}

func TestPreTransformReferenceValueBroadcast(t *testing.T) {
	raw := []model.RawDatum{{
		Model: model.ReferenceValueKey,
		X:     []string{"1980"},
		Y:     []float64{278.3},
	}}

	processed, err := PreTransform(model.PlotZonalMean, raw)
	if err != nil {
		t.Fatalf("PreTransform failed: %v", err)
	}

	entry := processed[model.ReferenceValueKey]
	for i, v := range entry.Years {
		if v == nil || *v != 278.3 {
			t.Fatalf("reference series[%v] = %v, want constant 278.3", i, v)
		}
	}
}

func TestPreTransformReturn(t *testing.T) {
	raw := []model.RawDatum{{
		Model: "CCMI-1_ACCESS_ACCESS-CCM-refC2",
		X:     []string{"Antarctic(Oct)", "SH mid-lat"},
		Y:     []float64{2064, 2051},
	}}

	processed, err := PreTransform(model.PlotReturn, raw)
	if err != nil {
		t.Fatalf("PreTransform failed: %v", err)
	}

	entry := processed["CCMI-1_ACCESS_ACCESS-CCM-refC2"]
	if entry.Regions["Antarctic(Oct)"] != 2064 || entry.Regions["SH mid-lat"] != 2051 {
		t.Errorf("regions = %+v", entry.Regions)
	}
	if entry.Suggested.MinX != nil || entry.Suggested.MaxX != nil {
		t.Error("return plot must not suggest x bounds")
	}
	if entry.Suggested.MinY == nil || *entry.Suggested.MinY != 2051 {
		t.Errorf("suggested minY = %v, want 2051", entry.Suggested.MinY)
	}
	if entry.Suggested.MaxY == nil || *entry.Suggested.MaxY != 2064 {
		t.Errorf("suggested maxY = %v, want 2064", entry.Suggested.MaxY)
	}
}

func TestPreTransformInvalidPlotID(t *testing.T) {
	_, err := PreTransform("tco3_unknown", nil)
	if !errors.Is(err, common.ErrInvalidPlotID) {
		t.Errorf("err = %v, want ErrInvalidPlotID", err)
	}
}

func TestMerge(t *testing.T) {
	dst := model.ProcessedData{"a": &model.ProcessedEntry{}}
	oldB := &model.ProcessedEntry{}
	dst["b"] = oldB

	newB := &model.ProcessedEntry{Regions: map[string]float64{"x": 1}}
	Merge(dst, model.ProcessedData{"b": newB, "c": {}})

	if len(dst) != 3 {
		t.Fatalf("merged size = %v, want 3", len(dst))
	}
	if dst["b"] != newB {
		t.Error("existing key must be overwritten by merge")
	}
}
