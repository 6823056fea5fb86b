// Package cache tracks plot data fetches per parameter fingerprint:
// it fetches only models not yet loaded or in flight, merges partial
// results into a session-long in-memory store and exposes the entry
// selected for display per plot type.
package cache

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/o3as/o3plot/model"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// CachedRequest is one fetch scope: all data ever loaded for one
// parameter fingerprint. Entries are never deleted within a session.
type CachedRequest struct {
	Key           string
	Status        Status
	LoadedModels  map[string]bool
	LoadingModels map[string]bool
	Data          model.ProcessedData
	Error         string
}

func newCachedRequest(key string) *CachedRequest {
	return &CachedRequest{
		Key:           key,
		Status:        StatusIdle,
		LoadedModels:  map[string]bool{},
		LoadingModels: map[string]bool{},
		Data:          model.ProcessedData{},
	}
}

// FetchParams identifies a fetch scope plus the models wanted in it.
type FetchParams struct {
	PlotID   model.PlotID
	LatMin   int
	LatMax   int
	Months   []int
	RefModel string
	RefYear  int
	Models   []string
}

// Key builds the deterministic cache key for these parameters. Months
// are sorted first, so identical parameters collide to the same entry
// regardless of request order.
func (p FetchParams) Key() string {
	return Key(p.LatMin, p.LatMax, p.Months, p.RefModel, p.RefYear)
}

func Key(latMin, latMax int, months []int, refModel string, refYear int) string {
	sorted := append([]int(nil), months...)
	sort.Ints(sorted)

	parts := make([]string, len(sorted))
	for i, m := range sorted {
		parts[i] = strconv.Itoa(m)
	}

	return fmt.Sprintf("lat_min=%d&lat_max=%d&months=%s&ref_meas=%s&ref_year=%d",
		latMin, latMax, strings.Join(parts, ","), refModel, refYear)
}
