// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/conghub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists user and pocket sub-account records.
type Store struct {
	c *mongo.Collection
}

// ErrAlreadyAffiliated is returned by Affiliate when the target user already
// belongs to a congregation (possibly assigned by a concurrent request).
var ErrAlreadyAffiliated = errors.New("user already belongs to a congregation")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetPocketUser looks up a pocket sub-account by id. A full account with the
// same id does not resolve.
func (s *Store) GetPocketUser(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id, "global_role": models.GlobalRolePocket}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// ListByCongregation returns all members of a congregation, pocket
// sub-accounts included.
func (s *Store) ListByCongregation(ctx context.Context, congID string) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"cong_id": congID}, options.Find().SetSort(bson.D{{Key: "username", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var members []models.User
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Affiliate attaches an unaffiliated user to a congregation with the given
// role set. The unaffiliated check and the assignment are a single
// FindOneAndUpdate, so two concurrent adds cannot assign the same user to
// two congregations; the loser gets ErrAlreadyAffiliated.
func (s *Store) Affiliate(ctx context.Context, userID primitive.ObjectID, congID string, roles []string) error {
	if roles == nil {
		roles = []string{}
	}
	filter := bson.M{"_id": userID, "cong_id": ""}
	update := bson.M{"$set": bson.M{
		"cong_id":    congID,
		"cong_role":  roles,
		"updated_at": time.Now().UTC(),
	}}
	err := s.c.FindOneAndUpdate(ctx, filter, update).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrAlreadyAffiliated
	}
	return err
}

// Unaffiliate detaches a user from their congregation and clears the role set.
func (s *Store) Unaffiliate(ctx context.Context, userID primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{
		"cong_id":    "",
		"cong_role":  []string{},
		"updated_at": time.Now().UTC(),
	}}
	_, err := s.c.UpdateByID(ctx, userID, update)
	return err
}

// UpdateCongRole replaces a member's congregation role set. Callers validate
// the roles against models.AllowedCongRoles before calling.
func (s *Store) UpdateCongRole(ctx context.Context, userID primitive.ObjectID, roles []string) error {
	if roles == nil {
		roles = []string{}
	}
	_, err := s.c.UpdateByID(ctx, userID, bson.M{"$set": bson.M{
		"cong_role":  roles,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

func (s *Store) UpdateUsername(ctx context.Context, userID primitive.ObjectID, username string) error {
	_, err := s.c.UpdateByID(ctx, userID, bson.M{"$set": bson.M{
		"username":   username,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

func (s *Store) UpdatePocketMembers(ctx context.Context, userID primitive.ObjectID, members []string) error {
	if members == nil {
		members = []string{}
	}
	_, err := s.c.UpdateByID(ctx, userID, bson.M{"$set": bson.M{
		"pocket_members": members,
		"updated_at":     time.Now().UTC(),
	}})
	return err
}

func (s *Store) UpdatePocketLocalID(ctx context.Context, userID primitive.ObjectID, localID string) error {
	_, err := s.c.UpdateByID(ctx, userID, bson.M{"$set": bson.M{
		"pocket_local_id": localID,
		"updated_at":      time.Now().UTC(),
	}})
	return err
}

// UpdatePocketDetails replaces a pocket user's role set and pocket member
// list in one write.
func (s *Store) UpdatePocketDetails(ctx context.Context, userID primitive.ObjectID, roles, members []string) error {
	if roles == nil {
		roles = []string{}
	}
	if members == nil {
		members = []string{}
	}
	_, err := s.c.UpdateByID(ctx, userID, bson.M{"$set": bson.M{
		"cong_role":      roles,
		"pocket_members": members,
		"updated_at":     time.Now().UTC(),
	}})
	return err
}

// CreatePocketUser inserts a new pocket sub-account already affiliated with
// the congregation.
func (s *Store) CreatePocketUser(ctx context.Context, congID, username, localID string) (models.User, error) {
	now := time.Now().UTC()
	u := models.User{
		ID:            primitive.NewObjectID(),
		Username:      username,
		GlobalRole:    models.GlobalRolePocket,
		CongID:        congID,
		CongRole:      []string{models.RoleViewSchedule},
		PocketDevices: []models.PocketDevice{},
		PocketMembers: []string{},
		PocketLocalID: localID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GeneratePocketCode creates a fresh one-time code for the pocket user,
// stores it in encrypted form, and returns the plaintext code to hand to
// the caller.
func (s *Store) GeneratePocketCode(ctx context.Context, userID primitive.ObjectID, encrypt func(string) (string, error)) (string, error) {
	code := newPocketCode()
	sealed, err := encrypt(code)
	if err != nil {
		return "", err
	}
	_, err = s.c.UpdateByID(ctx, userID, bson.M{"$set": bson.M{
		"pocket_ocode": sealed,
		"updated_at":   time.Now().UTC(),
	}})
	if err != nil {
		return "", err
	}
	return code, nil
}

// RemovePocketCode removes the one-time code and, when the user has no
// registered devices left, cascade-deletes the pocket user. Code removal
// and the cascade are one logical operation; a pocket user never survives
// in a deviceless, codeless limbo state. Full accounts never cascade: for
// them only the code is cleared, whatever the device list says. Returns
// true when the user was deleted.
func (s *Store) RemovePocketCode(ctx context.Context, user models.User) (bool, error) {
	if len(user.PocketDevices) == 0 {
		deleted, err := s.DeletePocketUser(ctx, user.ID)
		if err != nil {
			return false, err
		}
		if deleted {
			return true, nil
		}
	}
	_, err := s.c.UpdateByID(ctx, user.ID, bson.M{
		"$unset": bson.M{"pocket_ocode": ""},
		"$set":   bson.M{"updated_at": time.Now().UTC()},
	})
	return false, err
}

// RemovePocketDevice drops the device matching visitorID from the user's
// device list. A non-empty remainder is persisted and returned; an empty
// remainder cascade-deletes a pocket user instead (deleted=true, and the
// empty list is not persisted separately). A full account left with no
// devices keeps its record and gets the empty list persisted.
func (s *Store) RemovePocketDevice(ctx context.Context, user models.User, visitorID string) ([]models.PocketDevice, bool, error) {
	remaining := make([]models.PocketDevice, 0, len(user.PocketDevices))
	for _, d := range user.PocketDevices {
		if d.VisitorID != visitorID {
			remaining = append(remaining, d)
		}
	}
	if len(remaining) == 0 {
		deleted, err := s.DeletePocketUser(ctx, user.ID)
		if err != nil {
			return nil, false, err
		}
		if deleted {
			return nil, true, nil
		}
	}
	_, err := s.c.UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"pocket_devices": remaining,
		"updated_at":     time.Now().UTC(),
	}})
	if err != nil {
		return nil, false, err
	}
	return remaining, false, nil
}

// DeletePocketUser removes a pocket sub-account entirely. Full accounts are
// never deleted through this store; the filter misses them and the call
// reports false.
func (s *Store) DeletePocketUser(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": userID, "global_role": models.GlobalRolePocket})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// newPocketCode builds a one-time code in the XXXXXX-XXXXXX shape from
// fresh UUID randomness.
func newPocketCode() string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return hex[:6] + "-" + hex[6:12]
}
