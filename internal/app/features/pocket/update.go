// internal/app/features/pocket/update.go
package pocket

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/conghub/internal/app/policy/congpolicy"
	"github.com/dalemusser/conghub/internal/app/system/inputval"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"github.com/dalemusser/conghub/internal/app/system/timeouts"
)

type updateDetailsInput struct {
	CongRole      []string `json:"cong_role"`
	PocketMembers []string `json:"pocket_members"`
}

// HandleUpdateDetails rewrites a pocket user's role set and member list in
// one store operation.
func (h *Handler) HandleUpdateDetails(w http.ResponseWriter, r *http.Request) {
	_, user, ok := h.Gate.ResolveMemberWithUser(w, r, congpolicy.MissingCongUserID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	found, err := h.anyUser(ctx, user)
	if err != nil {
		if errors.Is(err, errPocketNotFound) {
			h.Out.Warn(w, r, http.StatusNotFound, outcome.Message("POCKET_NOT_FOUND"),
				"pocket user could not be found")
			return
		}
		h.Out.Error(w, r, err)
		return
	}

	var in updateDetailsInput
	if errs := inputval.DecodeBody(r, &in); !errs.Empty() {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.BadRequest(), "invalid input: "+errs.Join())
		return
	}

	if err := h.Users.UpdatePocketDetails(ctx, found.ID, in.CongRole, in.PocketMembers); err != nil {
		h.Out.Error(w, r, err)
		return
	}

	h.Out.Info(w, r, http.StatusOK, outcome.Message("POCKET_USER_UPDATED"),
		"pocket details updated")
}
