package state

import (
	"CafeAnalyzer/internal/entity"
	"sync"
	"sync/atomic"
)

// AppState is the process-wide view of the most recent analysis.
type AppState struct {
	mu        sync.RWMutex
	current   *entity.AnalysisResult
	annotated []byte

	busy atomic.Bool
}

func New() *AppState {
	return &AppState{}
}

// TryBeginAnalysis reports false while another analysis is in flight.
func (s *AppState) TryBeginAnalysis() bool {
	return s.busy.CompareAndSwap(false, true)
}

func (s *AppState) EndAnalysis() {
	s.busy.Store(false)
}

func (s *AppState) Busy() bool {
	return s.busy.Load()
}

func (s *AppState) SetCurrent(result entity.AnalysisResult, annotatedJPEG []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result.Image = nil
	s.current = &result
	s.annotated = annotatedJPEG
}

// Current returns a copy of the current result.
func (s *AppState) Current() (entity.AnalysisResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return entity.AnalysisResult{}, false
	}
	return *s.current, true
}

// CurrentID is 0 when nothing was analyzed yet.
func (s *AppState) CurrentID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return 0
	}
	return s.current.ID
}

func (s *AppState) AnnotatedImage() ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.annotated, len(s.annotated) > 0
}
