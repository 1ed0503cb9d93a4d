package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker-api/pkg/respond"
)

// NewRouter wires every endpoint. Task and stats routes sit behind RequireToken.
func NewRouter(authH *AuthHandler, taskH *TaskHandler, healthH *HealthHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(Recoverer(logger))

	// set before Route so sub-routers inherit them
	r.NotFound(endpointNotFound)
	r.MethodNotAllowed(endpointNotFound)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthH.Health)

		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)

		// auth per route: unmatched paths under /tasks stay 404 without a token
		protected := r.With(authH.RequireToken)
		protected.Get("/tasks", taskH.List)
		protected.Post("/tasks", taskH.Create)
		protected.Get("/tasks/{id}", taskH.Get)
		protected.Put("/tasks/{id}", taskH.Update)
		protected.Delete("/tasks/{id}", taskH.Delete)
		protected.Get("/stats", taskH.Stats)
	})

	return r
}

func endpointNotFound(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, r, http.StatusNotFound, "Endpoint not found")
}
