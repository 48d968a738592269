package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewHandler(questionHandler *QuestionHandler, answerHandler *AnswerHandler, resultHandler *ResultHandler, sessionHandler *SessionHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.Get("/questions", questionHandler.ListQuestions)

		r.Route("/answers", func(r chi.Router) {
			r.Post("/", answerHandler.SubmitAnswer)
			r.Post("/batch", answerHandler.SubmitAnswerBatch)
			r.Get("/proximity", answerHandler.ProximityAnswers)
		})

		r.Get("/results/proximity", resultHandler.ProximityResults)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.CreateSession)
			r.Put("/{id}/location", sessionHandler.SetLocation)
			r.Put("/{id}/radius", sessionHandler.SetRadius)
			r.Get("/{id}/results", sessionHandler.GetResults)
		})
	})

	return r
}
