package cache

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/o3as/o3plot/common"
	"github.com/o3as/o3plot/model"
	"github.com/o3as/o3plot/normalize"
	"github.com/o3as/o3plot/utils"
)

// Transport is the API boundary the store fetches through.
type Transport interface {
	Models(ctx context.Context) ([]string, error)
	PlotTypes(ctx context.Context) ([]string, error)
	PlotData(ctx context.Context, req PlotDataRequest) ([]model.RawDatum, error)
}

// PlotDataRequest is one network fetch: a fetch scope restricted to
// the listed models.
type PlotDataRequest struct {
	PlotID    model.PlotID
	LatMin    int
	LatMax    int
	Months    []int
	Models    []string
	StartYear int
	EndYear   int
	RefModel  string
	RefYear   int
}

// Store holds all cached requests of a session. All entry mutation is
// serialized through one mutex so concurrent fetches for the same key
// but disjoint model subsets merge without clobbering each other.
type Store struct {
	mu        sync.Mutex
	transport Transport
	plots     map[model.PlotID]*plotCache

	models    []string
	plotTypes []string
}

type plotCache struct {
	activeKey string
	entries   map[string]*CachedRequest
}

func NewStore(transport Transport) *Store {
	return &Store{
		transport: transport,
		plots:     map[model.PlotID]*plotCache{},
	}
}

func (s *Store) plotCacheLocked(plotID model.PlotID) *plotCache {
	pc := s.plots[plotID]
	if pc == nil {
		pc = &plotCache{entries: map[string]*CachedRequest{}}
		s.plots[plotID] = pc
	}
	return pc
}

// Fetch loads the requested models for the given parameters, reusing
// everything already loaded or in flight for the same cache key. A
// call whose models are all covered performs no network request and
// only marks the key active. Fetch blocks until its own network call
// completes; run it in a goroutine to dispatch concurrently.
func (s *Store) Fetch(ctx context.Context, params FetchParams) error {
	logger := utils.GetLogger(ctx)

	if !params.PlotID.Valid() {
		return fmt.Errorf("%w: %q", common.ErrInvalidPlotID, params.PlotID)
	}
	if len(params.Months) == 0 {
		return common.ErrNoMonthSelected
	}

	key := params.Key()

	s.mu.Lock()
	pc := s.plotCacheLocked(params.PlotID)
	pc.activeKey = key

	entry := pc.entries[key]
	if entry == nil {
		entry = newCachedRequest(key)
		pc.entries[key] = entry
	}

	var required []string
	for _, id := range params.Models {
		if entry.LoadedModels[id] || entry.LoadingModels[id] {
			continue
		}
		required = append(required, id)
	}

	if len(required) == 0 {
		// pure selection, everything is already covered
		s.mu.Unlock()
		logger.Info("cache hit, no fetch needed",
			zap.String("plotId", string(params.PlotID)), zap.String("key", key))
		return nil
	}

	for _, id := range required {
		entry.LoadingModels[id] = true
	}
	entry.Status = StatusLoading
	s.mu.Unlock()

	logger.Info("fetching plot data",
		zap.String("plotId", string(params.PlotID)), zap.String("key", key),
		zap.Int("requiredModels", len(required)))

	rawData, err := s.transport.PlotData(ctx, PlotDataRequest{
		PlotID:    params.PlotID,
		LatMin:    params.LatMin,
		LatMax:    params.LatMax,
		Months:    params.Months,
		Models:    required,
		StartYear: model.StartYear,
		EndYear:   model.EndYear,
		RefModel:  params.RefModel,
		RefYear:   params.RefYear,
	})
	if err != nil {
		s.failFetch(entry, err)
		logger.Error("plot data fetch failed",
			zap.String("key", key), zap.Error(err))
		return fmt.Errorf("fetch plot data: %w", err)
	}

	processed, err := normalize.PreTransform(params.PlotID, rawData)
	if err != nil {
		s.failFetch(entry, err)
		return err
	}

	s.mu.Lock()
	normalize.Merge(entry.Data, processed)
	for _, id := range required {
		delete(entry.LoadingModels, id)
		entry.LoadedModels[id] = true
	}
	if len(entry.LoadingModels) == 0 {
		entry.Status = StatusSuccess
		entry.Error = ""
	}
	s.mu.Unlock()

	logger.Info("plot data merged",
		zap.String("key", key), zap.Int("mergedModels", len(required)))
	return nil
}

// failFetch applies the conservative failure policy: the whole entry
// progress is discarded so the next dispatch retries cleanly.
func (s *Store) failFetch(entry *CachedRequest, err error) {
	s.mu.Lock()
	entry.Status = StatusError
	entry.Error = common.ErrorMessage(err)
	entry.LoadedModels = map[string]bool{}
	entry.LoadingModels = map[string]bool{}
	s.mu.Unlock()
}

// SetActive switches the displayed entry for a plot type. It is a
// pure selection, no network request is made, and reports whether an
// entry exists for the key.
func (s *Store) SetActive(plotID model.PlotID, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pc := s.plotCacheLocked(plotID)
	pc.activeKey = key
	_, found := pc.entries[key]
	return found
}

// ActivePlotData returns the entry selected for display. When nothing
// is active yet a loading placeholder is returned, matching what a
// dispatcher shows before the first response.
func (s *Store) ActivePlotData(plotID model.PlotID) *CachedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	pc := s.plots[plotID]
	if pc == nil || pc.entries[pc.activeKey] == nil {
		return &CachedRequest{Status: StatusLoading}
	}
	return pc.entries[pc.activeKey]
}

// ActiveSuggested combines the per-entry suggested bounds of the
// active entry's data into one range per axis. Recomputed on demand,
// so a cache-hit activation always reflects the cached data.
func (s *Store) ActiveSuggested(plotID model.PlotID) (model.Suggested, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pc := s.plots[plotID]
	if pc == nil {
		return model.Suggested{}, false
	}
	entry := pc.entries[pc.activeKey]
	if entry == nil || entry.Status != StatusSuccess {
		return model.Suggested{}, false
	}

	var combined model.Suggested
	for _, e := range entry.Data {
		combined.MinX = pickBound(combined.MinX, e.Suggested.MinX, false)
		combined.MaxX = pickBound(combined.MaxX, e.Suggested.MaxX, true)
		combined.MinY = pickBound(combined.MinY, e.Suggested.MinY, false)
		combined.MaxY = pickBound(combined.MaxY, e.Suggested.MaxY, true)
	}
	return combined, true
}

func pickBound(current, candidate *float64, max bool) *float64 {
	if candidate == nil {
		return current
	}
	if current == nil {
		return candidate
	}
	if (max && *candidate > *current) || (!max && *candidate < *current) {
		return candidate
	}
	return current
}

// Models lists all model ids the API knows, memoized for the session.
func (s *Store) Models(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	cached := s.models
	s.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	models, err := s.transport.Models(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch models: %w", err)
	}

	s.mu.Lock()
	s.models = models
	s.mu.Unlock()
	return models, nil
}

// PlotTypes lists the plot ids the API offers, memoized for the
// session.
func (s *Store) PlotTypes(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	cached := s.plotTypes
	s.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	plotTypes, err := s.transport.PlotTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch plot types: %w", err)
	}

	s.mu.Lock()
	s.plotTypes = plotTypes
	s.mu.Unlock()
	return plotTypes, nil
}
