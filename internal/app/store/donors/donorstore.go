// Package donorstore persists the set of currently active donors.
// A donor is active exactly while a document with their email exists.
package donorstore

import (
	"context"
	"errors"
	"time"

	"github.com/spondon-bd/spondon/internal/app/system/htmlsanitize"
	"github.com/spondon-bd/spondon/internal/app/system/normalize"
	"github.com/spondon-bd/spondon/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrAlreadyActive is returned when the donor's email is already active.
	ErrAlreadyActive = errors.New("donor already active")
	errEmailRequired = errors.New("email is required")
)

type Store struct {
	c   *mongo.Collection
	now func() time.Time
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:   db.Collection(models.CollActiveDonors),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Activate inserts d stamped with activatedAt. Activation is idempotent per
// email: an existing donor is left as is and ErrAlreadyActive is returned.
func (s *Store) Activate(ctx context.Context, d models.ActiveDonor) (models.ActiveDonor, error) {
	d.ID = primitive.NewObjectID()
	d.Email = normalize.Email(d.Email)
	if d.Email == "" {
		return models.ActiveDonor{}, errEmailRequired
	}
	d.ActivatedAt = s.now()
	htmlsanitize.Fields(d.Extra)

	if _, err := s.c.InsertOne(ctx, d); err != nil {
		if wafflemongo.IsDup(err) {
			return models.ActiveDonor{}, ErrAlreadyActive
		}
		return models.ActiveDonor{}, err
	}
	return d, nil
}

// List returns every active donor in activation order.
func (s *Store) List(ctx context.Context) ([]models.ActiveDonor, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.ActiveDonor{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByEmail returns the active donor with email, or mongo.ErrNoDocuments.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.ActiveDonor, error) {
	var d models.ActiveDonor
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Status reports whether email is currently active. The flag is computed
// from the lookup on every call; a miss is not an error.
func (s *Store) Status(ctx context.Context, email string) (models.DonorStatus, error) {
	d, err := s.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DonorStatus{ActiveDonor: models.ActiveDonor{Email: normalize.Email(email)}}, nil
	}
	if err != nil {
		return models.DonorStatus{}, err
	}
	return models.DonorStatus{ActiveDonor: *d, IsActive: true}, nil
}

// Deactivate removes the donor with email.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Deactivate(ctx context.Context, email string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"email": normalize.Email(email)})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
