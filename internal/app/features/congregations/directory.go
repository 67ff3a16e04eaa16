// internal/app/features/congregations/directory.go
package congregations

import (
	"net/http"
	"strings"

	"github.com/dalemusser/conghub/internal/app/system/outcome"
)

// supportedLanguages is the directory service's allow-list.
var supportedLanguages = map[string]bool{"E": true, "MG": true}

// ServeCountries proxies the directory's country listing for a language.
func (h *Handler) ServeCountries(w http.ResponseWriter, r *http.Request) {
	language := strings.ToUpper(r.Header.Get("language"))
	if !supportedLanguages[language] {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.BadRequest(), "invalid language")
		return
	}

	body, status, err := h.Directory.Countries(r.Context(), language)
	if err != nil {
		h.Out.Error(w, r, err)
		return
	}
	if body == nil {
		h.Out.Warn(w, r, status, outcome.Message("FETCH_FAILED"), "country listing fetch failed")
		return
	}

	h.Out.Info(w, r, http.StatusOK, body, "country listing retrieved")
}

// ServeCongregationList proxies the directory's congregation search for a
// country, optionally filtered by name.
func (h *Handler) ServeCongregationList(w http.ResponseWriter, r *http.Request) {
	language := strings.ToUpper(r.Header.Get("language"))
	country := strings.ToUpper(r.Header.Get("country"))
	name := r.Header.Get("name")

	if country == "" {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.BadRequest(), "invalid input: country: is required")
		return
	}
	if !supportedLanguages[language] {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.BadRequest(), "invalid language")
		return
	}

	body, status, err := h.Directory.CongregationsByCountry(r.Context(), country, language, name)
	if err != nil {
		h.Out.Error(w, r, err)
		return
	}
	if body == nil {
		h.Out.Warn(w, r, status, outcome.Message("FETCH_FAILED"), "congregation listing fetch failed")
		return
	}

	h.Out.Info(w, r, http.StatusOK, body, "congregation listing retrieved")
}
