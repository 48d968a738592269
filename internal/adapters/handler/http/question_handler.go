package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/opinionmap/api/internal/core/domain"
	"github.com/opinionmap/api/internal/core/ports"
)

type QuestionHandler struct {
	service ports.QuestionService
}

func NewQuestionHandler(service ports.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		service: service,
	}
}

func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.service.ListQuestions(r.Context())
	if err != nil {
		slog.Error("failed to list questions", "error", err)
		http.Error(w, domain.ErrInternal.Error(), http.StatusInternalServerError)
		return
	}

	if questions == nil {
		questions = []*domain.Question{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(questions); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
