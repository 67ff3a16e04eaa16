// internal/app/policy/congpolicy/congpolicy.go

// Package congpolicy implements the fixed authorization pipeline shared by
// every congregation-scoped operation:
//
//  1. required path identifiers are present (400 before any store access)
//  2. the congregation exists (404 before any membership check)
//  3. the caller's email header belongs to a member (403 otherwise)
//
// Payload validation and business rules stay in the handlers; the gate
// reports its own outcome on failure so handlers only continue on success.
package congpolicy

import (
	"errors"
	"net/http"

	congregationstore "github.com/dalemusser/conghub/internal/app/store/congregations"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"github.com/dalemusser/conghub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MissingID describes the outcome for an absent path identifier. The code
// varies by operation (the backup save/get routes historically answer
// REQUEST_ID_INVALID); the message is the audit text.
type MissingID struct {
	Code    string
	Message string
}

var (
	MissingCongID     = MissingID{Code: "CONG_ID_INVALID", Message: "the congregation id param is undefined"}
	MissingRequestID  = MissingID{Code: "REQUEST_ID_INVALID", Message: "the congregation request id param is undefined"}
	MissingCongUserID = MissingID{Code: "CONG_USER_ID_INVALID", Message: "the congregation and user ids params are undefined"}
)

// Access is the authorized context a gated handler continues with.
type Access struct {
	Cong  models.Congregation
	Email string
}

// Gate resolves congregations and verifies membership.
type Gate struct {
	Congs *congregationstore.Store
	Out   *outcome.Reporter
}

func New(congs *congregationstore.Store, out *outcome.Reporter) *Gate {
	return &Gate{Congs: congs, Out: out}
}

// ResolveMember runs the pipeline for operations addressed by a
// congregation id alone. On failure the outcome has been written and the
// second return is false.
func (g *Gate) ResolveMember(w http.ResponseWriter, r *http.Request, missing MissingID) (Access, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		g.Out.Warn(w, r, http.StatusBadRequest, outcome.Message(missing.Code), missing.Message)
		return Access{}, false
	}
	return g.resolve(w, r, id)
}

// ResolveMemberWithUser runs the pipeline for operations addressed by a
// congregation id and a user id. The user segment is returned raw; handlers
// map unparseable ids to their operation's not-found code. A literal
// "undefined" user segment counts as absent (clients have been observed
// interpolating missing values into the path).
func (g *Gate) ResolveMemberWithUser(w http.ResponseWriter, r *http.Request, missing MissingID) (Access, string, bool) {
	id := chi.URLParam(r, "id")
	user := chi.URLParam(r, "user")
	if id == "" || user == "" || user == "undefined" {
		g.Out.Warn(w, r, http.StatusBadRequest, outcome.Message(missing.Code), missing.Message)
		return Access{}, "", false
	}
	access, ok := g.resolve(w, r, id)
	if !ok {
		return Access{}, "", false
	}
	return access, user, true
}

func (g *Gate) resolve(w http.ResponseWriter, r *http.Request, id string) (Access, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// an unparseable id cannot match any congregation
		g.Out.Warn(w, r, http.StatusNotFound, outcome.Message("CONGREGATION_NOT_FOUND"),
			"no congregation could be found with the provided id")
		return Access{}, false
	}

	cong, err := g.Congs.GetByID(r.Context(), oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		g.Out.Warn(w, r, http.StatusNotFound, outcome.Message("CONGREGATION_NOT_FOUND"),
			"no congregation could be found with the provided id")
		return Access{}, false
	}
	if err != nil {
		g.Out.Error(w, r, err)
		return Access{}, false
	}

	email := r.Header.Get("email")
	isMember, err := g.Congs.IsMember(r.Context(), cong.ID, email)
	if err != nil {
		g.Out.Error(w, r, err)
		return Access{}, false
	}
	if !isMember {
		g.Out.Warn(w, r, http.StatusForbidden, outcome.Message("UNAUTHORIZED_REQUEST"),
			"user not authorized to access the provided congregation")
		return Access{}, false
	}

	return Access{Cong: cong, Email: email}, true
}
