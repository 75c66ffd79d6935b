package requeststore

import (
	"context"
	"errors"
	"time"

	"github.com/spondon-bd/spondon/internal/app/system/htmlsanitize"
	"github.com/spondon-bd/spondon/internal/app/system/normalize"
	"github.com/spondon-bd/spondon/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var errRequesterRequired = errors.New("requesterEmail is required")

type Store struct {
	c   *mongo.Collection
	now func() time.Time
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:   db.Collection(models.CollRequests),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Filter narrows List. Empty fields match everything.
type Filter struct {
	BloodGroup     string
	RequesterEmail string
}

func (f Filter) bson() bson.M {
	q := bson.M{}
	if bg := normalize.BloodGroup(f.BloodGroup); bg != "" {
		q["bloodGroup"] = bg
	}
	if email := normalize.Email(f.RequesterEmail); email != "" {
		q["requesterEmail"] = email
	}
	return q
}

// Create inserts a pending request stamped with createdAt. Blood groups are
// stored upper-cased so filtering by "b+" and "B+" agree.
func (s *Store) Create(ctx context.Context, r models.BloodRequest) (models.BloodRequest, error) {
	r.ID = primitive.NewObjectID()
	r.RequesterEmail = normalize.Email(r.RequesterEmail)
	if r.RequesterEmail == "" {
		return models.BloodRequest{}, errRequesterRequired
	}
	r.BloodGroup = normalize.BloodGroup(r.BloodGroup)
	r.DonorEmail = normalize.Email(r.DonorEmail)
	r.CreatedAt = s.now()
	htmlsanitize.Fields(r.Extra)

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.BloodRequest{}, err
	}
	return r, nil
}

// List returns pending requests matching f, oldest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.BloodRequest, error) {
	cur, err := s.c.Find(ctx, f.bson(), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.BloodRequest{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns the request with id, or mongo.ErrNoDocuments.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.BloodRequest, error) {
	var r models.BloodRequest
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Delete removes the request with id.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteMany removes every request whose id is in ids.
func (s *Store) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
