// internal/app/features/pocket/members.go
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

type updateMembersInput struct {
	Members []string `json:"members"`
}

// HandleUpdateMembers rewrites the person list a pocket user's schedule
// covers and echoes the new list.
func (h *Handler) HandleUpdateMembers(w http.ResponseWriter, r *http.Request) {
	_, user, ok := h.Gate.ResolveMemberWithUser(w, r, congpolicy.MissingCongUserID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	found, err := h.pocketUser(ctx, user)
	if err != nil {
		if errors.Is(err, errPocketNotFound) {
			h.Out.Warn(w, r, http.StatusNotFound, outcome.Message("POCKET_NOT_FOUND"),
				"pocket user could not be found")
			return
		}
		h.Out.Error(w, r, err)
		return
	}

	var in updateMembersInput
	errs := inputval.DecodeBody(r, &in)
	if errs.Empty() && in.Members == nil {
		errs.Add("members", "is required")
	}
	if !errs.Empty() {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.BadRequest(), "invalid input: "+errs.Join())
		return
	}

	if err := h.Users.UpdatePocketMembers(ctx, found.ID, in.Members); err != nil {
		h.Out.Error(w, r, err)
		return
	}

	h.Out.Info(w, r, http.StatusOK, map[string][]string{"pocket_members": in.Members},
		"pocket members updated")
}
