// internal/app/store/requests/requeststore.go
package requeststore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/conghub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store is the ledger of congregation-creation requests. A partial unique
// index on email_ci (where request_open is true) guarantees at most one
// open request per email even under concurrent submissions.
type Store struct {
	c *mongo.Collection
}

var ErrOpenRequestExists = errors.New("an open request already exists for this email")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("congregation_requests")}
}

// FindOpenByEmail returns the open request for the email, or
// mongo.ErrNoDocuments when there is none.
func (s *Store) FindOpenByEmail(ctx context.Context, email string) (models.CongregationRequest, error) {
	var req models.CongregationRequest
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email), "request_open": true}).Decode(&req)
	if err != nil {
		return models.CongregationRequest{}, err
	}
	return req, nil
}

// Create inserts a new open, unapproved request.
func (s *Store) Create(ctx context.Context, req models.CongregationRequest) (models.CongregationRequest, error) {
	req.ID = primitive.NewObjectID()
	req.EmailCI = text.Fold(req.Email)
	req.RequestDate = time.Now().UTC()
	req.Approved = false
	req.RequestOpen = true
	_, err := s.c.InsertOne(ctx, req)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.CongregationRequest{}, ErrOpenRequestExists
		}
		return models.CongregationRequest{}, err
	}
	return req, nil
}

// Approve marks the request approved and closes it.
func (s *Store) Approve(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"approved":     true,
		"request_open": false,
	}})
	return err
}
