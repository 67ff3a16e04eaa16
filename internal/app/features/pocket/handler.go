// internal/app/features/pocket/handler.go

// Package pocket serves the pocket-user sub-resource of a congregation.
// Pocket users are schedule-only accounts provisioned by a congregation and
// paired to devices through one-time codes.
package pocket

import (
	"github.com/dalemusser/conghub/internal/app/policy/congpolicy"
	congregationstore "github.com/dalemusser/conghub/internal/app/store/congregations"
	userstore "github.com/dalemusser/conghub/internal/app/store/users"
	"github.com/dalemusser/conghub/internal/app/system/otpcrypt"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Log   *zap.Logger
	Out   *outcome.Reporter
	Gate  *congpolicy.Gate
	Users *userstore.Store
	OTP   *otpcrypt.Cipher
}

func NewHandler(db *mongo.Database, out *outcome.Reporter, otp *otpcrypt.Cipher, logger *zap.Logger) *Handler {
	return &Handler{
		Log:   logger,
		Out:   out,
		Gate:  congpolicy.New(congregationstore.New(db), out),
		Users: userstore.New(db),
		OTP:   otp,
	}
}
