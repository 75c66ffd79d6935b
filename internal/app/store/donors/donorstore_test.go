package donorstore_test

import (
	"errors"
	"testing"

	donorstore "github.com/spondon-bd/spondon/internal/app/store/donors"
	"github.com/spondon-bd/spondon/internal/domain/models"
	"github.com/spondon-bd/spondon/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStore_Activate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := donorstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d, err := store.Activate(ctx, models.ActiveDonor{
		Email: "Donor@Example.com",
		Extra: bson.M{"bloodGroup": "A+", "phone": "0171"},
	})
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if d.ActivatedAt.IsZero() {
		t.Error("expected activatedAt to be stamped")
	}
	if d.Email != "donor@example.com" {
		t.Errorf("expected normalized email, got %q", d.Email)
	}

	got, err := store.GetByEmail(ctx, "donor@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.Extra["bloodGroup"] != "A+" {
		t.Errorf("expected profile field kept, got %v", got.Extra["bloodGroup"])
	}
}

func TestStore_Activate_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := donorstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Activate(ctx, models.ActiveDonor{Email: "d@x.com", Extra: bson.M{"city": "Dhaka"}})
	if err != nil {
		t.Fatalf("first Activate failed: %v", err)
	}

	_, err = store.Activate(ctx, models.ActiveDonor{Email: "d@x.com", Extra: bson.M{"city": "Sylhet"}})
	if !errors.Is(err, donorstore.ErrAlreadyActive) {
		t.Fatalf("expected ErrAlreadyActive, got %v", err)
	}

	if n := fixtures.Count(ctx, models.CollActiveDonors, nil); n != 1 {
		t.Errorf("expected one donor document, got %d", n)
	}
	got, err := store.GetByEmail(ctx, "d@x.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != first.ID || got.Extra["city"] != "Dhaka" {
		t.Error("existing donor must not be updated by a repeated activation")
	}
}

func TestStore_Status_ReflectsActivation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := donorstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	st, err := store.Status(ctx, "s@x.com")
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if st.IsActive {
		t.Error("expected inactive before activation")
	}

	if _, err := store.Activate(ctx, models.ActiveDonor{Email: "s@x.com"}); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	st, err = store.Status(ctx, "s@x.com")
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if !st.IsActive {
		t.Error("expected active immediately after activation")
	}

	if _, err := store.Deactivate(ctx, "s@x.com"); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}
	st, err = store.Status(ctx, "s@x.com")
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if st.IsActive {
		t.Error("expected inactive immediately after deactivation")
	}
}

func TestStore_Deactivate_AbsentSafe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := donorstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateActiveDonor(ctx, "keep@x.com")

	n, err := store.Deactivate(ctx, "never@x.com")
	if err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 deleted, got %d", n)
	}
	if c := fixtures.Count(ctx, models.CollActiveDonors, nil); c != 1 {
		t.Errorf("expected donor count unchanged at 1, got %d", c)
	}
}

func TestStore_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := donorstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateActiveDonor(ctx, "one@x.com")
	fixtures.CreateActiveDonor(ctx, "two@x.com")

	donors, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(donors) != 2 {
		t.Errorf("expected 2 donors, got %d", len(donors))
	}
}
