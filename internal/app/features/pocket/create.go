// internal/app/features/pocket/create.go
package pocket

import (
	"context"
	"net/http"

	"github.com/dalemusser/conghub/internal/app/policy/congpolicy"
	"github.com/dalemusser/conghub/internal/app/system/inputval"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"github.com/dalemusser/conghub/internal/app/system/timeouts"
)

type createPocketInput struct {
	Username      string `json:"username"`
	PocketLocalID string `json:"pocket_local_id"`
}

// HandleCreate provisions a pocket user for the congregation with the
// schedule-viewer role.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	access, ok := h.Gate.ResolveMember(w, r, congpolicy.MissingCongUserID)
	if !ok {
		return
	}

	var in createPocketInput
	errs := inputval.DecodeBody(r, &in)
	if errs.Empty() {
		if in.Username == "" {
			errs.Add("username", "is required")
		}
		if in.PocketLocalID == "" {
			errs.Add("pocket_local_id", "is required")
		}
	}
	if !errs.Empty() {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.BadRequest(), "invalid input: "+errs.Join())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Users.CreatePocketUser(ctx, access.Cong.ID.Hex(), in.Username, in.PocketLocalID); err != nil {
		h.Out.Error(w, r, err)
		return
	}

	h.Out.Info(w, r, http.StatusOK, outcome.Message("POCKET_CREATED"),
		"pocket user created successfully")
}
