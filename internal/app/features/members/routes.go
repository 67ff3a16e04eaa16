// internal/app/features/members/routes.go
package members

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the member routes, mounted under a congregation's
// /{id}/members path.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/find", h.ServeFind)
	r.Put("/", h.HandleAdd)

	r.Get("/{user}", h.ServeMember)
	r.Patch("/{user}", h.HandleUpdate)
	r.Delete("/{user}", h.HandleRemove)

	return r
}
