// internal/domain/models/request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CongregationRequest tracks a pending congregation-creation request.
// At most one open request may exist per email; the store enforces this
// with a partial unique index on email_ci where request_open is true.
type CongregationRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"`
	EmailCI     string             `bson:"email_ci" json:"-"`
	UserID      primitive.ObjectID `bson:"user_id,omitempty" json:"user_id"`
	Username    string             `bson:"username,omitempty" json:"username"`
	CongName    string             `bson:"cong_name" json:"cong_name"`
	CongNumber  int                `bson:"cong_number" json:"cong_number"`
	CongRole    string             `bson:"cong_role" json:"cong_role"`
	RequestDate time.Time          `bson:"request_date" json:"request_date"`
	Approved    bool               `bson:"approved" json:"approved"`
	RequestOpen bool               `bson:"request_open" json:"request_open"`
}
