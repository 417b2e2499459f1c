package models

import (
	"sync"
	"time"
)

// RenderSummary records what the figure currently shows.
type RenderSummary struct {
	Selection  AxisSelection
	PlotType   PlotType
	Points     int
	RenderedAt time.Time
}

// State is the application state owned by the controller. It is replaced
// piecewise in response to user actions, never shared as a global.
type State struct {
	mu         sync.RWMutex
	path       string
	table      *Table
	loadedAt   time.Time
	lastRender *RenderSummary
}

// NewState returns an empty state.
func NewState() *State {
	return &State{}
}

// SetPath stores the file path text.
func (s *State) SetPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = path
}

// Path returns the stored file path text.
func (s *State) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// SetTable replaces the loaded table wholesale.
func (s *State) SetTable(t *Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = t
	s.loadedAt = time.Now()
}

// Table returns the loaded table, or nil before the first successful load.
func (s *State) Table() *Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// LoadedAt returns when the current table was loaded.
func (s *State) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// SetLastRender records a successful render.
func (s *State) SetLastRender(r RenderSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRender = &r
}

// LastRender returns the last successful render, or nil.
func (s *State) LastRender() *RenderSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastRender == nil {
		return nil
	}
	r := *s.lastRender
	return &r
}
