package approvedstore_test

import (
	"errors"
	"testing"
	"time"

	approvedstore "github.com/spondon-bd/spondon/internal/app/store/approved"
	"github.com/spondon-bd/spondon/internal/domain/models"
	"github.com/spondon-bd/spondon/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Insert_RejectsSecondApproval(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := approvedstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := fixtures.CreateRequest(ctx, "a@x.com", "B+")

	if err := store.Insert(ctx, models.NewApprovedRequest(req, "d@x.com", time.Now().UTC())); err != nil {
		t.Fatalf("first Insert failed: %v", err)
	}
	err := store.Insert(ctx, models.NewApprovedRequest(req, "other@x.com", time.Now().UTC()))
	if !errors.Is(err, approvedstore.ErrAlreadyApproved) {
		t.Errorf("expected ErrAlreadyApproved, got %v", err)
	}

	got, err := store.GetByRequestID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetByRequestID failed: %v", err)
	}
	if got.DonorEmail != "d@x.com" {
		t.Errorf("first approval should win, got donor %q", got.DonorEmail)
	}
}

func TestStore_List_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := approvedstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateApproved(ctx, fixtures.CreateRequest(ctx, "r1@x.com", "A+"), "d1@x.com")
	fixtures.CreateApproved(ctx, fixtures.CreateRequest(ctx, "r1@x.com", "A+"), "d2@x.com")
	fixtures.CreateApproved(ctx, fixtures.CreateRequest(ctx, "r2@x.com", "A+"), "d1@x.com")

	tests := []struct {
		name   string
		filter approvedstore.Filter
		want   int
	}{
		{"all", approvedstore.Filter{}, 3},
		{"donor", approvedstore.Filter{DonorEmail: "D1@x.com"}, 2},
		{"requester", approvedstore.Filter{RequesterEmail: "r1@x.com"}, 2},
		{"unknown donor", approvedstore.Filter{DonorEmail: "nobody@x.com"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := approvedstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateApproved(ctx, fixtures.CreateRequest(ctx, "r@x.com", "A+"), "")

	if n, err := store.Delete(ctx, a.ID); err != nil || n != 1 {
		t.Fatalf("Delete: n=%d err=%v", n, err)
	}
	if n, err := store.Delete(ctx, primitive.NewObjectID()); err != nil || n != 0 {
		t.Errorf("Delete missing: n=%d err=%v", n, err)
	}
	if _, err := store.GetByRequestID(ctx, a.RequestID); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}
