package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(api *API) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(api.logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", api.HandleHealth)
	r.Get("/categories", api.HandleCategories)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", api.HandleCreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Delete("/", api.HandleDeleteSession)
			r.Get("/current", api.HandleCurrent)
			r.Post("/answer", api.HandleAnswer)
			r.Post("/tick", api.HandleTick)
			r.Post("/timeout", api.HandleTimeout)
			r.Get("/result", api.HandleResult)
		})
	})

	r.Get("/history", api.HandleHistory)
	r.Get("/history/{attemptID}", api.HandleAttempt)
	r.Get("/leaderboard", api.HandleLeaderboard)

	return r
}
