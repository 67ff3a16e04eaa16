// internal/app/store/audit/store.go
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Severities for audit events, matching the outcome classification each
// operation produces.
const (
	SeverityInfo = "info"
	SeverityWarn = "warn"
)

// Event is one recorded operation outcome.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Timestamp time.Time          `bson:"timestamp"`

	Severity string `bson:"severity"`
	Message  string `bson:"message"`
	Status   int    `bson:"status"`

	Method string `bson:"method"`
	Path   string `bson:"path"`

	// Who: the caller identity header and, when resolved, the target
	// congregation.
	Email  string `bson:"email,omitempty"`
	CongID string `bson:"cong_id,omitempty"`

	IP string `bson:"ip,omitempty"`
}

// Store persists audit events.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("audit_events")}
}

// Insert records an audit event.
func (s *Store) Insert(ctx context.Context, event Event) error {
	event.ID = primitive.NewObjectID()
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

// ListRecent returns the newest events, most recent first.
func (s *Store) ListRecent(ctx context.Context, limit int64) ([]Event, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var events []Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
