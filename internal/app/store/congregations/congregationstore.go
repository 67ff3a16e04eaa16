// internal/app/store/congregations/congregationstore.go
package congregationstore

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

// Store persists congregations and answers membership questions.
//
// Membership is derived from the users collection (users carry cong_id), so
// IsMember always reflects the latest add/remove writes without a cached
// member array going stale.
type Store struct {
	c     *mongo.Collection
	users *mongo.Collection
}

var ErrDuplicateCongregation = errors.New("a congregation with this country code and number already exists")

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("congregations"),
		users: db.Collection("users"),
	}
}

// Create inserts a new congregation. The country_code+cong_number composite
// is unique; a duplicate insert returns ErrDuplicateCongregation.
func (s *Store) Create(ctx context.Context, cong models.Congregation) (models.Congregation, error) {
	now := time.Now().UTC()
	cong.ID = primitive.NewObjectID()
	cong.CreatedAt = now
	cong.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, cong)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Congregation{}, ErrDuplicateCongregation
		}
		return models.Congregation{}, err
	}
	return cong, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Congregation, error) {
	var cong models.Congregation
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cong)
	if err != nil {
		return models.Congregation{}, err
	}
	return cong, nil
}

// GetByNumber finds a congregation by its country code + number composite.
func (s *Store) GetByNumber(ctx context.Context, countryCode string, number int) (models.Congregation, error) {
	var cong models.Congregation
	err := s.c.FindOne(ctx, bson.M{"country_code": countryCode, "cong_number": number}).Decode(&cong)
	if err != nil {
		return models.Congregation{}, err
	}
	return cong, nil
}

// IsMember reports whether the given email belongs to a current member of
// the congregation. The check runs against the users collection so it is
// synchronous with prior membership writes.
func (s *Store) IsMember(ctx context.Context, id primitive.ObjectID, email string) (bool, error) {
	n, err := s.users.CountDocuments(ctx, bson.M{"email_ci": text.Fold(email), "cong_id": id.Hex()})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateInfo persists new identity fields and refreshes UpdatedAt.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, countryCode, name string, number int) error {
	set := bson.M{
		"country_code": countryCode,
		"cong_name":    name,
		"cong_number":  number,
		"updated_at":   time.Now().UTC(),
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateCongregation
		}
		return err
	}
	return nil
}

// SaveBackup persists all six backup payload sections in one write and
// records which member performed the save and when.
func (s *Store) SaveBackup(ctx context.Context, id primitive.ObjectID, backup models.Backup, email string) error {
	now := time.Now().UTC()
	set := bson.M{
		"cong_persons":         backup.CongPersons,
		"cong_deleted":         backup.CongDeleted,
		"cong_schedule":        backup.CongSchedule,
		"cong_source_material": backup.CongSourceMaterial,
		"cong_sws_pocket":      backup.CongSwsPocket,
		"cong_settings":        backup.CongSettings,
		"last_backup":          models.BackupInfo{By: email, Date: now},
		"updated_at":           now,
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// SaveSchedule persists the schedule and settings sections together.
func (s *Store) SaveSchedule(ctx context.Context, id primitive.ObjectID, schedules, settings any) error {
	set := bson.M{
		"cong_schedule": schedules,
		"cong_settings": settings,
		"updated_at":    time.Now().UTC(),
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}
