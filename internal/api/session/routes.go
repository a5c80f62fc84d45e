package session

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/start-session", h.StartSession)
	r.Post("/start-session/", h.StartSession)
	r.Post("/answer-question", h.AnswerQuestion)
	r.Post("/answer-question/", h.AnswerQuestion)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/{id}", h.GetSession)
		r.Get("/{id}/export", h.ExportSession)
	})
}
