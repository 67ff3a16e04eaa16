// internal/app/features/pocket/code.go
package pocket

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/conghub/internal/app/policy/congpolicy"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"github.com/dalemusser/conghub/internal/app/system/timeouts"
)

// HandleGenerateCode mints a fresh one-time pairing code, stores it
// encrypted, and returns the plaintext to the caller. Only the stored copy
// is ever encrypted; the plaintext exists once, in this response.
func (h *Handler) HandleGenerateCode(w http.ResponseWriter, r *http.Request) {
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

	code, err := h.Users.GeneratePocketCode(ctx, found.ID, h.OTP.Encrypt)
	if err != nil {
		h.Out.Error(w, r, err)
		return
	}

	h.Out.Info(w, r, http.StatusOK, map[string]string{"code": code},
		"pocket otp code generated")
}

// HandleDeleteCode discards the pocket user's one-time code. A pocket user
// left with no paired devices is deleted outright; the removal and the
// cascade are one store operation.
func (h *Handler) HandleDeleteCode(w http.ResponseWriter, r *http.Request) {
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

	deleted, err := h.Users.RemovePocketCode(ctx, found)
	if err != nil {
		h.Out.Error(w, r, err)
		return
	}

	if deleted {
		h.Out.Info(w, r, http.StatusOK, outcome.Message("POCKET_USER_DELETED"),
			"pocket code removed, and pocket user deleted")
		return
	}

	h.Out.Info(w, r, http.StatusOK, outcome.Message("POCKET_CODE_REMOVED"),
		"pocket code successfully removed")
}
