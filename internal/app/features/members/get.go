// internal/app/features/members/get.go
package members

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/conghub/internal/app/policy/congpolicy"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"github.com/dalemusser/conghub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeMember returns one user record by id.
func (h *Handler) ServeMember(w http.ResponseWriter, r *http.Request) {
	_, user, ok := h.Gate.ResolveMemberWithUser(w, r, congpolicy.MissingCongUserID)
	if !ok {
		return
	}

	userID, err := primitive.ObjectIDFromHex(user)
	if err != nil {
		h.Out.Warn(w, r, http.StatusNotFound, outcome.Message("ACCOUNT_NOT_FOUND"),
			"user could not be found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	found, err := h.Users.GetByID(ctx, userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.Out.Warn(w, r, http.StatusNotFound, outcome.Message("ACCOUNT_NOT_FOUND"),
			"user could not be found")
		return
	}
	if err != nil {
		h.Out.Error(w, r, err)
		return
	}

	h.Out.Info(w, r, http.StatusOK, found, "user details fetched successfully")
}
