// internal/app/features/schedules/routes.go
package schedules

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the schedule routes, mounted under a congregation's
// /{id}/schedule path.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleSend)
	r.Get("/", h.ServeSchedule)

	return r
}

// PublicRoutes returns the unauthenticated routes, mounted under
// /api/public.
func PublicRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/source-material/{language}", h.ServeSourceMaterial)

	return r
}
