package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers the API routes.
func SetupRoutes(router chi.Router, h *Handlers) {
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api", func(r chi.Router) {
		r.Route("/groups", func(r chi.Router) {
			r.Get("/", h.ListGroups)
			r.Post("/validate", h.ValidateGroup)
			r.Get("/{name}", h.GetGroup)
			r.Put("/{name}", h.SaveGroup)
			r.Delete("/{name}", h.DeleteGroup)
		})
		r.Post("/schemas/transform", h.TransformSchema)
		r.Post("/models", h.CreateModel)
		r.Post("/models/update", h.UpdateModel)
	})
}
