package approvedstore

import (
	"context"
	"errors"

	"github.com/spondon-bd/spondon/internal/app/system/normalize"
	"github.com/spondon-bd/spondon/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrAlreadyApproved is returned when an approved copy for the same request
// id already exists.
var ErrAlreadyApproved = errors.New("request already approved")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(models.CollApprovedRequests)}
}

// Filter narrows List. Empty fields match everything.
type Filter struct {
	DonorEmail     string
	RequesterEmail string
}

func (f Filter) bson() bson.M {
	q := bson.M{}
	if email := normalize.Email(f.DonorEmail); email != "" {
		q["donorEmail"] = email
	}
	if email := normalize.Email(f.RequesterEmail); email != "" {
		q["requesterEmail"] = email
	}
	return q
}

// Insert stores a. The unique index on requestId turns a second approval of
// the same request into ErrAlreadyApproved.
func (s *Store) Insert(ctx context.Context, a models.ApprovedRequest) error {
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrAlreadyApproved
		}
		return err
	}
	return nil
}

// List returns approved requests matching f, oldest approval first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.ApprovedRequest, error) {
	cur, err := s.c.Find(ctx, f.bson(), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.ApprovedRequest{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByRequestID returns the approved copy of the request with id, or
// mongo.ErrNoDocuments.
func (s *Store) GetByRequestID(ctx context.Context, id primitive.ObjectID) (*models.ApprovedRequest, error) {
	var a models.ApprovedRequest
	if err := s.c.FindOne(ctx, bson.M{"requestId": id}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Delete removes the approved record with id.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
