// internal/app/features/congregations/routes.go
package congregations

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the congregation lifecycle routes plus the member, pocket,
// and schedule sub-resource routers under /{id}.
// Typically: r.Mount("/api/congregations", congregations.Routes(h, m, p, s))
func Routes(h *Handler, members, pockets, schedules chi.Router) chi.Router {
	r := chi.NewRouter()

	r.Post("/request", h.HandleRequest)
	r.Post("/", h.HandleCreate)

	// Directory pass-throughs for congregation discovery.
	r.Get("/countries", h.ServeCountries)
	r.Get("/list", h.ServeCongregationList)

	r.Route("/{id}", func(pr chi.Router) {
		pr.Patch("/", h.HandleUpdateInfo)
		pr.Get("/backup/last", h.ServeLastBackup)
		pr.Post("/backup", h.HandleSaveBackup)
		pr.Get("/backup", h.ServeBackup)

		pr.Mount("/members", members)
		pr.Mount("/pockets", pockets)
		pr.Mount("/schedule", schedules)
	})

	return r
}
