// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/conghub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateCongregation creates a test congregation.
// Returns the created congregation with its generated ID.
func (f *Fixtures) CreateCongregation(ctx context.Context, name, countryCode string, number int) models.Congregation {
	f.t.Helper()

	now := time.Now().UTC()
	cong := models.Congregation{
		ID:          primitive.NewObjectID(),
		CongName:    name,
		CongNumber:  number,
		CountryCode: countryCode,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := f.db.Collection("congregations").InsertOne(ctx, cong)
	if err != nil {
		f.t.Fatalf("failed to create test congregation: %v", err)
	}

	return cong
}

// CreateUser creates a full (vip) test user, enabled and MFA-verified.
// congID may be empty for an unaffiliated user.
func (f *Fixtures) CreateUser(ctx context.Context, username, email, congID string, roles []string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		Username:   username,
		Email:      email,
		EmailCI:    text.Fold(email),
		GlobalRole: models.GlobalRoleVIP,
		CongID:     congID,
		CongRole:   roles,
		MFAEnabled: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateDisabledUser creates a full test user with the disabled flag set.
func (f *Fixtures) CreateDisabledUser(ctx context.Context, username, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		Username:   username,
		Email:      email,
		EmailCI:    text.Fold(email),
		GlobalRole: models.GlobalRoleVIP,
		MFAEnabled: true,
		Disabled:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreatePocketUser creates a pocket sub-account for a congregation with
// the given devices and an already-encrypted one-time code (may be empty).
func (f *Fixtures) CreatePocketUser(ctx context.Context, username, congID, oCode string, devices []models.PocketDevice) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:            primitive.NewObjectID(),
		Username:      username,
		GlobalRole:    models.GlobalRolePocket,
		CongID:        congID,
		CongRole:      []string{models.RoleViewSchedule},
		PocketOCode:   oCode,
		PocketDevices: devices,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test pocket user: %v", err)
	}

	return user
}

// CreateOpenRequest creates an open congregation request for an email.
func (f *Fixtures) CreateOpenRequest(ctx context.Context, email, congName string, congNumber int) models.CongregationRequest {
	f.t.Helper()

	req := models.CongregationRequest{
		ID:          primitive.NewObjectID(),
		Email:       email,
		EmailCI:     text.Fold(email),
		CongName:    congName,
		CongNumber:  congNumber,
		CongRole:    models.RoleLMMO,
		RequestDate: time.Now().UTC(),
		RequestOpen: true,
	}

	_, err := f.db.Collection("congregation_requests").InsertOne(ctx, req)
	if err != nil {
		f.t.Fatalf("failed to create test congregation request: %v", err)
	}

	return req
}
