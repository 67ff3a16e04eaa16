// internal/app/features/members/add.go
package members

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/conghub/internal/app/policy/congpolicy"
	userstore "github.com/dalemusser/conghub/internal/app/store/users"
	"github.com/dalemusser/conghub/internal/app/system/inputval"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"github.com/dalemusser/conghub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type addMemberInput struct {
	UserID string `json:"user_id"`
}

// HandleAdd attaches an unaffiliated user to the congregation. The
// unaffiliated check and the attachment are one atomic store operation, so
// two concurrent adds can never claim the same user.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	access, ok := h.Gate.ResolveMember(w, r, congpolicy.MissingCongUserID)
	if !ok {
		return
	}

	var in addMemberInput
	errs := inputval.DecodeBody(r, &in)
	if errs.Empty() && in.UserID == "" {
		errs.Add("user_id", "is required")
	}
	if !errs.Empty() {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.BadRequest(), "invalid input: "+errs.Join())
		return
	}

	userID, err := primitive.ObjectIDFromHex(in.UserID)
	if err != nil {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.BadRequest(), "invalid input: user_id: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Users.Affiliate(ctx, userID, access.Cong.ID.Hex(), []string{})
	if errors.Is(err, userstore.ErrAlreadyAffiliated) {
		// the atomic filter also misses ids with no user behind them;
		// only claim membership for a user that actually exists
		if _, lookupErr := h.Users.GetByID(ctx, userID); errors.Is(lookupErr, mongo.ErrNoDocuments) {
			h.Out.Warn(w, r, http.StatusNotFound, outcome.Message("ACCOUNT_NOT_FOUND"),
				"user could not be found")
			return
		}
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.Message("ALREADY_MEMBER"),
			"member already has a congregation")
		return
	}
	if err != nil {
		h.Out.Error(w, r, err)
		return
	}

	h.Out.Info(w, r, http.StatusOK, outcome.Message("MEMBER_ADDED"),
		"member added to the congregation")
}
