// internal/app/features/pocket/device.go
package pocket

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

type deleteDeviceInput struct {
	PocketVisitorID string `json:"pocket_visitorid"`
}

// HandleDeleteDevice unpairs one device by visitor id. When other devices
// remain the trimmed list is persisted and returned; when none remain the
// pocket user is deleted outright, same cascade as code removal.
//
// Payload validation runs before the identifier checks; this operation has
// historically deviated from the usual pipeline order.
func (h *Handler) HandleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	var in deleteDeviceInput
	errs := inputval.DecodeBody(r, &in)
	if errs.Empty() && in.PocketVisitorID == "" {
		errs.Add("pocket_visitorid", "is required")
	}
	if !errs.Empty() {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.BadRequest(), "invalid input: "+errs.Join())
		return
	}

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

	remaining, deleted, err := h.Users.RemovePocketDevice(ctx, found, in.PocketVisitorID)
	if err != nil {
		h.Out.Error(w, r, err)
		return
	}

	if deleted {
		h.Out.Info(w, r, http.StatusOK, outcome.Message("POCKET_USER_DELETED"),
			"pocket device removed, and pocket user deleted")
		return
	}

	h.Out.Info(w, r, http.StatusOK, map[string][]models.PocketDevice{"devices": remaining},
		"pocket device successfully removed")
}
