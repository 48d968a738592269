package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/opinionmap/api/internal/core/domain"
	"github.com/opinionmap/api/internal/core/ports"
)

type ResultHandler struct {
	service ports.ResultsService
}

func NewResultHandler(service ports.ResultsService) *ResultHandler {
	return &ResultHandler{
		service: service,
	}
}

// ProximityResults returns per-question vote tallies over the answers
// within radius_km of the given point.
func (h *ResultHandler) ProximityResults(w http.ResponseWriter, r *http.Request) {
	center, radius, err := parseProximityQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	results, err := h.service.ProximityResults(r.Context(), center, radius)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("failed to aggregate proximity results", "error", err)
		http.Error(w, domain.ErrInternal.Error(), http.StatusInternalServerError)
		return
	}

	if results == nil {
		results = []domain.QuestionResult{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(results); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
