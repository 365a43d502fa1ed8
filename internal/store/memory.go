package store

import (
	"errors"
	"sync"
	"time"

	"github.com/tempdash/temperature-dashboard/internal/analysis"
	"github.com/tempdash/temperature-dashboard/internal/series"
)

var (
	// ErrNoDataset is returned when no temperature history has been loaded yet.
	ErrNoDataset = errors.New("no dataset loaded")

	// ErrNotFound is returned when no data is available for a given city.
	ErrNotFound = errors.New("no data for city")
)

// MemoryStore is a concurrency-safe in-memory holder for the loaded
// temperature history plus the most recent analysis result and live
// classification per city. A new upload replaces everything: results
// computed against the old dataset are stale by definition.
type MemoryStore struct {
	mu sync.RWMutex

	dataset  series.Series
	byCity   map[string]series.Series
	loadedAt time.Time

	results map[string]*analysis.Result
	live    map[string]analysis.LiveClassification
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byCity:  make(map[string]series.Series),
		results: make(map[string]*analysis.Result),
		live:    make(map[string]analysis.LiveClassification),
	}
}

// SetDataset replaces the loaded dataset and drops all derived results.
func (s *MemoryStore) SetDataset(ds series.Series) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataset = ds
	s.loadedAt = time.Now().UTC()
	s.byCity = make(map[string]series.Series)
	for _, city := range ds.Cities() {
		s.byCity[city] = ds.FilterCity(city)
	}
	s.results = make(map[string]*analysis.Result)
	s.live = make(map[string]analysis.LiveClassification)
}

// LoadedAt returns the time the current dataset was loaded, zero when
// no dataset is present.
func (s *MemoryStore) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Dataset returns the full loaded series.
func (s *MemoryStore) Dataset() (series.Series, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.dataset) == 0 {
		return nil, ErrNoDataset
	}
	return s.dataset, nil
}

// Cities returns the distinct cities of the loaded dataset in
// first-seen order.
func (s *MemoryStore) Cities() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.dataset) == 0 {
		return nil, ErrNoDataset
	}
	return s.dataset.Cities(), nil
}

// CitySeries returns the records for one city, in row order.
func (s *MemoryStore) CitySeries(city string) (series.Series, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.dataset) == 0 {
		return nil, ErrNoDataset
	}
	cs, ok := s.byCity[city]
	if !ok || len(cs) == 0 {
		return nil, ErrNotFound
	}
	return cs, nil
}

// SaveResult stores the most recent analysis result for a city.
func (s *MemoryStore) SaveResult(city string, res *analysis.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[city] = res
}

// GetResult returns the most recent analysis result for a city.
func (s *MemoryStore) GetResult(city string) (*analysis.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.results[city]
	if !ok {
		return nil, ErrNotFound
	}
	return res, nil
}

// SaveLive stores the most recent live classification for a city.
func (s *MemoryStore) SaveLive(city string, lc analysis.LiveClassification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live[city] = lc
}

// GetLive returns the most recent live classification for a city.
func (s *MemoryStore) GetLive(city string) (analysis.LiveClassification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lc, ok := s.live[city]
	if !ok {
		return analysis.LiveClassification{}, ErrNotFound
	}
	return lc, nil
}
