// internal/app/features/pocket/routes.go
package pocket

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the pocket-user routes, mounted under a congregation's
// /{id}/pockets path.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreate)

	r.Route("/{user}", func(pr chi.Router) {
		pr.Get("/", h.ServePocket)
		pr.Patch("/", h.HandleUpdateDetails)
		pr.Patch("/username", h.HandleUpdateUsername)
		pr.Patch("/members", h.HandleUpdateMembers)
		pr.Get("/code", h.HandleGenerateCode)
		pr.Delete("/code", h.HandleDeleteCode)
		pr.Delete("/devices", h.HandleDeleteDevice)
	})

	return r
}
