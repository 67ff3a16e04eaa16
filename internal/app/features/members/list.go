// internal/app/features/members/list.go
package members

import (
	"context"
	"net/http"

	"github.com/dalemusser/conghub/internal/app/policy/congpolicy"
	"github.com/dalemusser/conghub/internal/app/system/timeouts"
)

// ServeList returns every member of the congregation, sorted by username.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	access, ok := h.Gate.ResolveMember(w, r, congpolicy.MissingCongID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := h.Users.ListByCongregation(ctx, access.Cong.ID.Hex())
	if err != nil {
		h.Out.Error(w, r, err)
		return
	}

	h.Out.Info(w, r, http.StatusOK, members, "user fetched congregation members")
}
