// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Global account kinds. A "vip" user is a full account created through the
// regular signup flow (out of scope here); a "pocket" user is a secondary,
// password-less sub-account created by a congregation for schedule access.
const (
	GlobalRoleVIP    = "vip"
	GlobalRolePocket = "pocket"
)

// User represents both full accounts and pocket sub-accounts.
//
// CongID is the hex id of the congregation the user belongs to; the empty
// string means unaffiliated. A user belongs to at most one congregation at
// a time, enforced by the store's atomic affiliate operation.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username   string             `bson:"username" json:"username"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	EmailCI    string             `bson:"email_ci,omitempty" json:"-"` // lowercase, diacritics-stripped
	GlobalRole string             `bson:"global_role" json:"global_role"`

	CongID   string   `bson:"cong_id" json:"cong_id"`
	CongRole []string `bson:"cong_role" json:"cong_role"`

	MFAEnabled bool `bson:"mfa_enabled" json:"mfa_enabled"`
	Disabled   bool `bson:"disabled" json:"disabled"`

	// Pocket fields. PocketOCode holds the encrypted one-time code; it is
	// never serialized to callers in its stored form.
	PocketOCode   string         `bson:"pocket_ocode,omitempty" json:"-"`
	PocketDevices []PocketDevice `bson:"pocket_devices,omitempty" json:"pocket_devices"`
	PocketMembers []string       `bson:"pocket_members,omitempty" json:"pocket_members"`
	PocketLocalID string         `bson:"pocket_local_id,omitempty" json:"pocket_local_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PocketDevice is one registered device of a pocket user, keyed by the
// client-generated visitor id.
type PocketDevice struct {
	VisitorID string    `bson:"visitorid" json:"visitorid"`
	Name      string    `bson:"name,omitempty" json:"name,omitempty"`
	LastSeen  time.Time `bson:"last_seen,omitempty" json:"last_seen,omitempty"`
}

// IsPocket reports whether the user is a pocket sub-account.
func (u User) IsPocket() bool {
	return u.GlobalRole == GlobalRolePocket
}
