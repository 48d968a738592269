package http

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/opinionmap/api/internal/core/domain"
	"github.com/opinionmap/api/internal/core/ports"
	"github.com/opinionmap/api/internal/core/services"
)

// SessionHandler exposes results sessions over HTTP. A session tracks a
// requester's location and radius and re-aggregates on every change;
// sessions live in process memory, they are not durable state.
type SessionHandler struct {
	results ports.ResultsService

	mu       sync.RWMutex
	sessions map[uuid.UUID]*services.ResultsSession
}

func NewSessionHandler(results ports.ResultsService) *SessionHandler {
	return &SessionHandler{
		results:  results,
		sessions: make(map[uuid.UUID]*services.ResultsSession),
	}
}

type sessionStateResponse struct {
	ID      uuid.UUID               `json:"id"`
	State   services.SessionState   `json:"state"`
	Results []domain.QuestionResult `json:"results"`
	Error   string                  `json:"error,omitempty"`
}

func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session := services.NewResultsSession(h.results)

	h.mu.Lock()
	h.sessions[session.ID] = session
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(stateResponse(session))
}

type setLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *SessionHandler) SetLocation(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req setLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session.SetLocation(r.Context(), domain.Location{Latitude: req.Latitude, Longitude: req.Longitude})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stateResponse(session))
}

type setRadiusRequest struct {
	RadiusKM float64 `json:"radius_km"`
}

func (h *SessionHandler) SetRadius(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req setRadiusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session.SetRadius(r.Context(), req.RadiusKM)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stateResponse(session))
}

func (h *SessionHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stateResponse(session))
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*services.ResultsSession, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return nil, false
	}

	h.mu.RLock()
	session, ok := h.sessions[id]
	h.mu.RUnlock()
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

func stateResponse(session *services.ResultsSession) sessionStateResponse {
	state, results, err := session.State()
	if results == nil {
		results = []domain.QuestionResult{}
	}

	resp := sessionStateResponse{
		ID:      session.ID,
		State:   state,
		Results: results,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}
