package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/spondon-bd/spondon/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data directly in the
// database, bypassing the stores under test.
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

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert test %s document: %v", coll, err)
	}
}

// CreateUser inserts a user with the given email.
func (f *Fixtures) CreateUser(ctx context.Context, email string) models.User {
	f.t.Helper()
	u := models.User{
		ID:    primitive.NewObjectID(),
		Email: email,
		Extra: bson.M{"name": "Test User"},
	}
	f.insert(ctx, models.CollUsers, u)
	return u
}

// CreateActiveDonor inserts an active donor with the given email.
func (f *Fixtures) CreateActiveDonor(ctx context.Context, email string) models.ActiveDonor {
	f.t.Helper()
	d := models.ActiveDonor{
		ID:          primitive.NewObjectID(),
		Email:       email,
		ActivatedAt: time.Now().UTC(),
		Extra:       bson.M{"bloodGroup": "O+"},
	}
	f.insert(ctx, models.CollActiveDonors, d)
	return d
}

// CreateVolunteer inserts a volunteer with the given email.
func (f *Fixtures) CreateVolunteer(ctx context.Context, email string) models.Volunteer {
	f.t.Helper()
	v := models.Volunteer{
		ID:       primitive.NewObjectID(),
		Email:    email,
		JoinedAt: time.Now().UTC(),
	}
	f.insert(ctx, models.CollVolunteers, v)
	return v
}

// CreateRequest inserts a pending blood request.
func (f *Fixtures) CreateRequest(ctx context.Context, requesterEmail, bloodGroup string) models.BloodRequest {
	f.t.Helper()
	r := models.BloodRequest{
		ID:             primitive.NewObjectID(),
		RequesterEmail: requesterEmail,
		BloodGroup:     bloodGroup,
		CreatedAt:      time.Now().UTC(),
		Extra:          bson.M{"hospital": "Test Hospital", "units": int32(1)},
	}
	f.insert(ctx, models.CollRequests, r)
	return r
}

// CreateApproved inserts an approved copy of req without deleting req.
func (f *Fixtures) CreateApproved(ctx context.Context, req models.BloodRequest, donorEmail string) models.ApprovedRequest {
	f.t.Helper()
	a := models.NewApprovedRequest(req, donorEmail, time.Now().UTC())
	f.insert(ctx, models.CollApprovedRequests, a)
	return a
}

// Count returns the number of documents in coll matching filter (nil for all).
func (f *Fixtures) Count(ctx context.Context, coll string, filter any) int64 {
	f.t.Helper()
	if filter == nil {
		filter = bson.M{}
	}
	n, err := f.db.Collection(coll).CountDocuments(ctx, filter)
	if err != nil {
		f.t.Fatalf("count %s: %v", coll, err)
	}
	return n
}
