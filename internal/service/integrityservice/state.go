package integrityservice

import (
	"slices"
	"sync"
	"time"

	"github.com/GlebRadaev/equb/internal/domain"
)

//go:generate mockgen -source=state.go -destination=mock_state.go -package=integrityservice

// Guard is read by every money-moving operation before it mutates the ledger.
type Guard interface {
	IsDegraded() bool
}

// State is the process-wide integrity flag. It starts healthy and is only
// written by a Verifier; there is no manual override.
type State struct {
	mu         sync.RWMutex
	degraded   bool
	lastCheck  *time.Time
	violations []string
}

func NewState() *State {
	return &State{}
}

func (s *State) IsDegraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

func (s *State) Snapshot() domain.IntegrityState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := domain.IntegrityState{
		IsDegraded: s.degraded,
		Violations: slices.Clone(s.violations),
	}
	if s.lastCheck != nil {
		ts := *s.lastCheck
		state.LastCheckTimestamp = &ts
	}
	return state
}

func (s *State) apply(report *domain.IntegrityReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := report.Timestamp
	s.degraded = report.IsDegraded
	s.lastCheck = &ts
	s.violations = slices.Clone(report.Violations)
}
