// internal/app/features/schedules/handler.go

// Package schedules serves a congregation's meeting schedule sub-resource
// and the public source-material listing backing it.
package schedules

import (
	"github.com/dalemusser/conghub/internal/app/gateway/directory"
	"github.com/dalemusser/conghub/internal/app/policy/congpolicy"
	congregationstore "github.com/dalemusser/conghub/internal/app/store/congregations"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Log       *zap.Logger
	Out       *outcome.Reporter
	Gate      *congpolicy.Gate
	Congs     *congregationstore.Store
	Directory *directory.Client
}

func NewHandler(db *mongo.Database, out *outcome.Reporter, dir *directory.Client, logger *zap.Logger) *Handler {
	congs := congregationstore.New(db)
	return &Handler{
		Log:       logger,
		Out:       out,
		Gate:      congpolicy.New(congs, out),
		Congs:     congs,
		Directory: dir,
	}
}
