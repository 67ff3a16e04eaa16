// internal/app/features/schedules/public.go
package schedules

import (
	"net/http"
	"strings"

	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"github.com/go-chi/chi/v5"
)

// ServeSourceMaterial lists the published meeting-workbook issues for a
// language, crawled live from the content CDN. An unknown or not-yet
// published language yields an empty crawl, reported as 404
// FETCHING_FAILED.
func (h *Handler) ServeSourceMaterial(w http.ResponseWriter, r *http.Request) {
	language := strings.ToUpper(chi.URLParam(r, "language"))

	sources, err := h.Directory.SourceMaterial(r.Context(), language)
	if err != nil {
		h.Out.Error(w, r, err)
		return
	}

	if len(sources) == 0 {
		h.Out.Warn(w, r, http.StatusNotFound, outcome.Message("FETCHING_FAILED"),
			"source material could not be fetched: language is invalid or not available yet")
		return
	}

	h.Out.Info(w, r, http.StatusOK, sources, "updated source material fetched")
}
