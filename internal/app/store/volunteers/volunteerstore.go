package volunteerstore

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
	// ErrDuplicateVolunteer is returned when the email is already registered as a volunteer.
	ErrDuplicateVolunteer = errors.New("volunteer already exists")
	errEmailRequired      = errors.New("email is required")
)

type Store struct {
	c   *mongo.Collection
	now func() time.Time
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:   db.Collection(models.CollVolunteers),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create registers v stamped with joinedAt, once per email.
func (s *Store) Create(ctx context.Context, v models.Volunteer) (models.Volunteer, error) {
	v.ID = primitive.NewObjectID()
	v.Email = normalize.Email(v.Email)
	if v.Email == "" {
		return models.Volunteer{}, errEmailRequired
	}
	v.JoinedAt = s.now()
	htmlsanitize.Fields(v.Extra)

	if _, err := s.c.InsertOne(ctx, v); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Volunteer{}, ErrDuplicateVolunteer
		}
		return models.Volunteer{}, err
	}
	return v, nil
}

func (s *Store) List(ctx context.Context) ([]models.Volunteer, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Volunteer{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByEmail returns the volunteer with email, or mongo.ErrNoDocuments.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Volunteer, error) {
	var v models.Volunteer
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Delete removes the volunteer with email.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, email string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"email": normalize.Email(email)})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
