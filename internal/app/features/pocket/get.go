// internal/app/features/pocket/get.go
package pocket

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/conghub/internal/app/policy/congpolicy"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"github.com/dalemusser/conghub/internal/app/system/timeouts"
	"github.com/dalemusser/conghub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// pocketRecord is a pocket user with its one-time code in the clear. The
// stored code is opaque; it is decrypted only for this response.
type pocketRecord struct {
	models.User
	PocketOCode string `json:"pocket_oCode"`
}

// ServePocket returns a pocket user's record. The one-time code is decrypted
// only when present; an empty stored code passes through as an empty string.
func (h *Handler) ServePocket(w http.ResponseWriter, r *http.Request) {
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

	code := ""
	if found.PocketOCode != "" {
		code, err = h.OTP.Decrypt(found.PocketOCode)
		if err != nil {
			h.Out.Error(w, r, err)
			return
		}
	}

	h.Out.Info(w, r, http.StatusOK, pocketRecord{User: found, PocketOCode: code},
		"pocket user details fetched successfully")
}

var errPocketNotFound = errors.New("pocket user not found")

// pocketUser resolves a pocket user id. Unparseable ids and unknown users
// both return errPocketNotFound.
func (h *Handler) pocketUser(ctx context.Context, user string) (models.User, error) {
	userID, err := primitive.ObjectIDFromHex(user)
	if err != nil {
		return models.User{}, errPocketNotFound
	}

	found, err := h.Users.GetPocketUser(ctx, userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, errPocketNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return found, nil
}

// anyUser resolves any user id, pocket or not. Some operations historically
// accept either kind of account.
func (h *Handler) anyUser(ctx context.Context, user string) (models.User, error) {
	userID, err := primitive.ObjectIDFromHex(user)
	if err != nil {
		return models.User{}, errPocketNotFound
	}

	found, err := h.Users.GetByID(ctx, userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, errPocketNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return found, nil
}
