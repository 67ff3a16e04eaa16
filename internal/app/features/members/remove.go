// internal/app/features/members/remove.go
package members

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

// HandleRemove detaches a member from the congregation. The target must
// belong to the congregation in the URL; a user affiliated elsewhere reports
// MEMBER_NOT_FOUND so one congregation can never remove another's member.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Users.Unaffiliate(ctx, target.ID); err != nil {
		h.Out.Error(w, r, err)
		return
	}

	h.Out.Info(w, r, http.StatusOK, outcome.Message("OK"),
		"member removed from the congregation")
}

var errNotMember = errors.New("user does not belong to the congregation")

// memberOf resolves a user id and confirms its affiliation with congID.
// Unparseable ids, unknown users, and users affiliated elsewhere all return
// errNotMember.
func (h *Handler) memberOf(ctx context.Context, congID, user string) (target models.User, err error) {
	userID, err := primitive.ObjectIDFromHex(user)
	if err != nil {
		return target, errNotMember
	}

	found, err := h.Users.GetByID(ctx, userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return target, errNotMember
	}
	if err != nil {
		return target, err
	}
	if found.CongID != congID {
		return target, errNotMember
	}
	return found, nil
}
