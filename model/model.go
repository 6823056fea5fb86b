package model

import "fmt"

type PlotID string

const (
	// PlotZonalMean is the time series plot: total column ozone zonal
	// mean per year.
	PlotZonalMean PlotID = "tco3_zm"
	// PlotReturn is the return date plot: one value per geographic
	// region.
	PlotReturn PlotID = "tco3_return"
)

func (p PlotID) Valid() bool {
	return p == PlotZonalMean || p == PlotReturn
}

// RawDatum is one model's series as delivered by the API. For
// tco3_zm the x values are year strings, for tco3_return they are
// region names.
type RawDatum struct {
	Model     string    `json:"model"`
	PlotStyle PlotStyle `json:"plotstyle"`
	X         []string  `json:"x"`
	Y         []float64 `json:"y"`
}

// PlotStyle is an opaque pass-through from the API.
type PlotStyle struct {
	Color     string `json:"color"`
	Linestyle string `json:"linestyle"`
	Label     string `json:"label"`
}

// YearSeries is a dense array over [StartYear, EndYear], index 0 is
// StartYear. A nil element marks a year missing from the source data.
type YearSeries []*float64

// Suggested holds the axis bounds derived from a single entry's own
// data. Nil fields mean the entry suggests no bound for that axis.
type Suggested struct {
	MinX *float64 `json:"minX,omitempty"`
	MaxX *float64 `json:"maxX,omitempty"`
	MinY *float64 `json:"minY,omitempty"`
	MaxY *float64 `json:"maxY,omitempty"`
}

// ProcessedEntry is one model's normalized data. Exactly one of Years
// and Regions is set depending on the plot type.
type ProcessedEntry struct {
	PlotStyle PlotStyle
	Years     YearSeries
	Regions   map[string]float64
	Suggested Suggested
}

// ProcessedData maps a model id (or ReferenceValueKey) to its entry.
type ProcessedData map[string]*ProcessedEntry

// StatFlags toggles the four statistic kinds.
type StatFlags struct {
	Mean       bool `json:"mean"`
	Std        bool `json:"std"`
	Median     bool `json:"median"`
	Percentile bool `json:"percentile"`
}

// MemberFlags controls one model inside a group: IsVisible toggles
// the individual line, the embedded StatFlags toggle the model's
// inclusion in each of the group's statistic series.
type MemberFlags struct {
	IsVisible bool `json:"isVisible"`
	StatFlags
}

// ModelGroup is a named, user-defined cluster of models. A model may
// belong to several groups. IsVisible=false hides all members from
// the plot and from aggregate computation regardless of member flags.
type ModelGroup struct {
	ID           int                    `json:"id"`
	Name         string                 `json:"name"`
	IsVisible    bool                   `json:"isVisible"`
	VisibleStats StatFlags              `json:"visibleStats"`
	Models       map[string]MemberFlags `json:"models"`
}

func (g *ModelGroup) DebugString() string {
	return fmt.Sprintf("group %v (%v), visible: %v, modelCount: %v",
		g.ID, g.Name, g.IsVisible, len(g.Models))
}

// Float returns a pointer to v, for building nullable series values.
func Float(v float64) *float64 {
	return &v
}
