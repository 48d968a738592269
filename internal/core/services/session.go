package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/opinionmap/api/internal/core/domain"
	"github.com/opinionmap/api/internal/core/ports"
)

// SessionState is the observable state of a results session.
type SessionState string

const (
	StateLocationUnknown SessionState = "location_unknown"
	StateLoading         SessionState = "loading"
	StateReady           SessionState = "ready"
	StateError           SessionState = "error"
)

const defaultRadiusKM = 10

// ResultsSession re-runs the proximity query and aggregation whenever the
// requester's location or search radius changes. A failed refresh moves the
// session to StateError but keeps the last ready results, so transient
// store failures never blank an already-populated view.
type ResultsSession struct {
	ID uuid.UUID

	results ports.ResultsService

	mu       sync.Mutex
	state    SessionState
	location *domain.Location
	radiusKM float64
	current  []domain.QuestionResult
	lastErr  error
}

func NewResultsSession(results ports.ResultsService) *ResultsSession {
	return &ResultsSession{
		ID:       uuid.New(),
		results:  results,
		state:    StateLocationUnknown,
		radiusKM: defaultRadiusKM,
	}
}

// SetLocation records the requester's position and refreshes the results.
func (s *ResultsSession) SetLocation(ctx context.Context, location domain.Location) {
	s.mu.Lock()
	s.location = &location
	s.mu.Unlock()
	s.refresh(ctx)
}

// SetRadius changes the search radius and refreshes the results when a
// location is already known.
func (s *ResultsSession) SetRadius(ctx context.Context, radiusKM float64) {
	s.mu.Lock()
	s.radiusKM = radiusKM
	known := s.location != nil
	s.mu.Unlock()
	if known {
		s.refresh(ctx)
	}
}

// Refresh re-runs the query with the current location and radius.
func (s *ResultsSession) Refresh(ctx context.Context) {
	s.mu.Lock()
	known := s.location != nil
	s.mu.Unlock()
	if known {
		s.refresh(ctx)
	}
}

// State returns the session state, the last ready results and the last
// refresh error, if any.
func (s *ResultsSession) State() (SessionState, []domain.QuestionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.current, s.lastErr
}

func (s *ResultsSession) refresh(ctx context.Context) {
	s.mu.Lock()
	if s.location == nil {
		s.state = StateLocationUnknown
		s.mu.Unlock()
		return
	}
	center := *s.location
	radius := s.radiusKM
	s.state = StateLoading
	s.mu.Unlock()

	results, err := s.results.ProximityResults(ctx, center, radius)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateError
		s.lastErr = err
		return
	}
	s.state = StateReady
	s.lastErr = nil
	s.current = results
}
