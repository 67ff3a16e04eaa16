// internal/app/features/members/find.go
package members

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/conghub/internal/app/policy/congpolicy"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"github.com/dalemusser/conghub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeFind looks up a prospective member by email. A candidate is only
// surfaced when enabled, MFA-verified, and unaffiliated; every other state
// collapses to ACCOUNT_NOT_FOUND so callers cannot probe account existence
// or a different congregation's roster. A candidate already in this
// congregation answers ALREADY_MEMBER.
func (h *Handler) ServeFind(w http.ResponseWriter, r *http.Request) {
	access, ok := h.Gate.ResolveMember(w, r, congpolicy.MissingCongID)
	if !ok {
		return
	}

	search := r.URL.Query().Get("search")
	if search == "" {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.Message("SEARCH_INVALID"),
			"the search parameter is not correct")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	candidate, err := h.Users.GetByEmail(ctx, search)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		h.Out.Error(w, r, err)
		return
	}

	if err != nil || candidate.Disabled || !candidate.MFAEnabled {
		h.Out.Warn(w, r, http.StatusNotFound, outcome.Message("ACCOUNT_NOT_FOUND"),
			"user could not be found")
		return
	}

	if candidate.CongID == access.Cong.ID.Hex() {
		h.Out.Info(w, r, http.StatusOK, outcome.Message("ALREADY_MEMBER"),
			"user is already member of the congregation")
		return
	}
	if candidate.CongID != "" {
		h.Out.Warn(w, r, http.StatusNotFound, outcome.Message("ACCOUNT_NOT_FOUND"),
			"user could not be found")
		return
	}

	h.Out.Info(w, r, http.StatusOK, candidate, "user details fetched successfully")
}
