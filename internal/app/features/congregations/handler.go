// internal/app/features/congregations/handler.go
package congregations

import (
	"github.com/dalemusser/conghub/internal/app/gateway/directory"
	"github.com/dalemusser/conghub/internal/app/policy/congpolicy"
	congregationstore "github.com/dalemusser/conghub/internal/app/store/congregations"
	requeststore "github.com/dalemusser/conghub/internal/app/store/requests"
	userstore "github.com/dalemusser/conghub/internal/app/store/users"
	"github.com/dalemusser/conghub/internal/app/system/mailer"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Config carries the feature's business settings, resolved once at startup.
type Config struct {
	// AutoApproveRequests immediately turns congregation requests into
	// congregations instead of parking them for manual review.
	AutoApproveRequests bool
	// ReviewerEmail receives notifications for requests awaiting manual
	// approval.
	ReviewerEmail string
}

// Handler is the feature-level handler for congregation lifecycle:
// requests, creation, info updates, backups, and directory listings.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	Out       *outcome.Reporter
	Gate      *congpolicy.Gate
	Congs     *congregationstore.Store
	Users     *userstore.Store
	Requests  *requeststore.Store
	Directory *directory.Client
	Mail      *mailer.Mailer
	Cfg       Config
}

func NewHandler(db *mongo.Database, out *outcome.Reporter, dir *directory.Client, mail *mailer.Mailer, cfg Config, logger *zap.Logger) *Handler {
	congs := congregationstore.New(db)
	return &Handler{
		DB:        db,
		Log:       logger,
		Out:       out,
		Gate:      congpolicy.New(congs, out),
		Congs:     congs,
		Users:     userstore.New(db),
		Requests:  requeststore.New(db),
		Directory: dir,
		Mail:      mail,
		Cfg:       cfg,
	}
}
