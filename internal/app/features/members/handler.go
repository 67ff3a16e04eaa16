// internal/app/features/members/handler.go
package members

import (
	"github.com/dalemusser/conghub/internal/app/policy/congpolicy"
	congregationstore "github.com/dalemusser/conghub/internal/app/store/congregations"
	userstore "github.com/dalemusser/conghub/internal/app/store/users"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the member sub-resource of a congregation: listing,
// searching, adding, removing, and updating member records.
type Handler struct {
	Log   *zap.Logger
	Out   *outcome.Reporter
	Gate  *congpolicy.Gate
	Users *userstore.Store
}

func NewHandler(db *mongo.Database, out *outcome.Reporter, logger *zap.Logger) *Handler {
	return &Handler{
		Log:   logger,
		Out:   out,
		Gate:  congpolicy.New(congregationstore.New(db), out),
		Users: userstore.New(db),
	}
}
