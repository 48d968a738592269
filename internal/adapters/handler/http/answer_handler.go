package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/opinionmap/api/internal/core/domain"
	"github.com/opinionmap/api/internal/core/ports"
)

type AnswerHandler struct {
	service ports.AnswerService
	filter  ports.ProximityFilter
}

func NewAnswerHandler(service ports.AnswerService, filter ports.ProximityFilter) *AnswerHandler {
	return &AnswerHandler{
		service: service,
		filter:  filter,
	}
}

type submitAnswerRequest struct {
	QuestionID int64    `json:"question_id"`
	OptionID   int64    `json:"option_id"`
	AnswerText string   `json:"answer_text"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

type submitBatchRequest struct {
	Answers []submitAnswerRequest `json:"answers"`
}

type submitBatchResponse struct {
	Inserted []*domain.Answer `json:"inserted"`
	Error    string           `json:"error,omitempty"`
}

func (h *AnswerHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input, err := req.toInput()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	answer, err := h.service.Submit(r.Context(), input)
	if err != nil {
		writeSubmitError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(answer); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// SubmitAnswerBatch persists answers in order and stops at the first
// failure. Rows inserted before the failure are reported back so the
// caller knows what was kept.
func (h *AnswerHandler) SubmitAnswerBatch(w http.ResponseWriter, r *http.Request) {
	var req submitBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Answers) == 0 {
		http.Error(w, "answers is required", http.StatusBadRequest)
		return
	}

	inputs := make([]ports.SubmitAnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		input, err := a.toInput()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		inputs = append(inputs, input)
	}

	created, err := h.service.SubmitBatch(r.Context(), inputs)
	if created == nil {
		created = []*domain.Answer{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(submitErrorStatus(err))
		json.NewEncoder(w).Encode(submitBatchResponse{Inserted: created, Error: err.Error()})
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(submitBatchResponse{Inserted: created}); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *AnswerHandler) ProximityAnswers(w http.ResponseWriter, r *http.Request) {
	center, radius, err := parseProximityQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	answers, err := h.filter.WithinRadius(r.Context(), center, radius)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("proximity query failed", "error", err)
		http.Error(w, domain.ErrInternal.Error(), http.StatusInternalServerError)
		return
	}

	if answers == nil {
		answers = []domain.ProximityAnswer{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(answers); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (req submitAnswerRequest) toInput() (ports.SubmitAnswerInput, error) {
	if req.Latitude == nil || req.Longitude == nil {
		return ports.SubmitAnswerInput{}, errors.New("latitude and longitude are required")
	}
	if req.OptionID == 0 {
		if req.QuestionID == 0 {
			return ports.SubmitAnswerInput{}, errors.New("question_id or option_id is required")
		}
		if req.AnswerText == "" {
			return ports.SubmitAnswerInput{}, errors.New("answer_text is required")
		}
	}
	return ports.SubmitAnswerInput{
		QuestionID: req.QuestionID,
		OptionID:   req.OptionID,
		Text:       req.AnswerText,
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
	}, nil
}

func parseProximityQuery(r *http.Request) (domain.Location, float64, error) {
	params := r.URL.Query()
	for _, name := range []string{"latitude", "longitude", "radius_km"} {
		if params.Get(name) == "" {
			return domain.Location{}, 0, fmt.Errorf("missing required query parameters: latitude, longitude, and radius_km are required")
		}
	}

	lat, err := strconv.ParseFloat(params.Get("latitude"), 64)
	if err != nil {
		return domain.Location{}, 0, fmt.Errorf("latitude must be a number")
	}
	lon, err := strconv.ParseFloat(params.Get("longitude"), 64)
	if err != nil {
		return domain.Location{}, 0, fmt.Errorf("longitude must be a number")
	}
	radius, err := strconv.ParseFloat(params.Get("radius_km"), 64)
	if err != nil {
		return domain.Location{}, 0, fmt.Errorf("radius_km must be a number")
	}

	return domain.Location{Latitude: lat, Longitude: lon}, radius, nil
}

func writeSubmitError(w http.ResponseWriter, err error) {
	status := submitErrorStatus(err)
	if status == http.StatusInternalServerError {
		slog.Error("failed to submit answer", "error", err)
		http.Error(w, domain.ErrInternal.Error(), status)
		return
	}
	http.Error(w, err.Error(), status)
}

func submitErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrQuestionNotFound), errors.Is(err, domain.ErrOptionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
