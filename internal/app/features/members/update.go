// internal/app/features/members/update.go
package members

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/conghub/internal/app/policy/congpolicy"
	"github.com/dalemusser/conghub/internal/app/system/inputval"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"github.com/dalemusser/conghub/internal/app/system/timeouts"
	"github.com/dalemusser/conghub/internal/domain/models"
)

type updateMemberInput struct {
	UserRole      []string `json:"user_role"`
	PocketMembers []string `json:"pocket_members"`
	PocketLocalID string   `json:"pocket_local_id"`
}

// HandleUpdate rewrites a member's role set, pocket member list, and pocket
// local id. The role set is validated element-wise against the fixed role
// enumeration: one invalid entry rejects the whole update.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	access, user, ok := h.Gate.ResolveMemberWithUser(w, r, congpolicy.MissingCongUserID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	target, err := h.memberOf(ctx, access.Cong.ID.Hex(), user)
	if err != nil {
		if errors.Is(err, errNotMember) {
			h.Out.Warn(w, r, http.StatusNotFound, outcome.Message("MEMBER_NOT_FOUND"),
				"member is no longer found in the congregation")
			return
		}
		h.Out.Error(w, r, err)
		return
	}

	var in updateMemberInput
	if errs := inputval.DecodeBody(r, &in); !errs.Empty() {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.BadRequest(), "invalid input: "+errs.Join())
		return
	}

	if !models.ValidCongRoles(in.UserRole) {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.BadRequest(), "invalid role provided")
		return
	}

	if err := h.Users.UpdateCongRole(ctx, target.ID, in.UserRole); err != nil {
		h.Out.Error(w, r, err)
		return
	}
	if err := h.Users.UpdatePocketMembers(ctx, target.ID, in.PocketMembers); err != nil {
		h.Out.Error(w, r, err)
		return
	}
	if err := h.Users.UpdatePocketLocalID(ctx, target.ID, in.PocketLocalID); err != nil {
		h.Out.Error(w, r, err)
		return
	}

	h.Out.Info(w, r, http.StatusOK, outcome.Message("MEMBER_UPDATED"),
		"member details in congregation updated")
}
