// Package store keeps analysis results in memory for the lifetime of the process.
package store

import (
	"call-analysis/metrics"
	"call-analysis/models"
	"sync"
)

// Results is a concurrency-safe cache of analyses keyed by file id.
type Results struct {
	mu      sync.RWMutex
	results map[string]*models.Analysis
}

// NewResults creates an empty result cache.
func NewResults() *Results {
	return &Results{results: make(map[string]*models.Analysis)}
}

// Put stores a result, replacing any earlier result with the same id.
func (s *Results) Put(id string, result *models.Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[id] = result
	metrics.StoredResults.Set(float64(len(s.results)))
}

// Get returns the result stored under id.
func (s *Results) Get(id string) (*models.Analysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[id]
	return result, ok
}

// Len returns the number of stored results.
func (s *Results) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}
