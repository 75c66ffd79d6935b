package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/spondon-bd/spondon/internal/app/store/users"
	"github.com/spondon-bd/spondon/internal/domain/models"
	"github.com/spondon-bd/spondon/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		Email: "  Rahim@Example.com ",
		Extra: bson.M{"name": "Rahim", "bio": "<script>x()</script>Donor"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Email != "rahim@example.com" {
		t.Errorf("expected normalized email, got %q", created.Email)
	}

	got, err := store.GetByEmail(ctx, "RAHIM@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetByEmail returned %s, want %s", got.ID.Hex(), created.ID.Hex())
	}
	if got.Extra["name"] != "Rahim" {
		t.Errorf("expected extra field round-trip, got %v", got.Extra["name"])
	}
	if got.Extra["bio"] != "Donor" {
		t.Errorf("expected sanitized bio, got %v", got.Extra["bio"])
	}
}

func TestStore_Create_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{Email: "dup@example.com"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.User{Email: "DUP@example.com"})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}

	if n := fixtures.Count(ctx, models.CollUsers, nil); n != 1 {
		t.Errorf("expected exactly one stored user, got %d", n)
	}
}

func TestStore_Create_RequiresEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{Email: "   "}); err == nil {
		t.Error("expected error for blank email")
	}
}

func TestStore_GetByEmail_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByEmail(ctx, "nobody@example.com")
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	empty, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", empty)
	}

	a := fixtures.CreateUser(ctx, "a@example.com")
	b := fixtures.CreateUser(ctx, "b@example.com")

	users, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].ID != a.ID || users[1].ID != b.ID {
		t.Error("expected users in insertion order")
	}
}

func TestStore_SetDisabled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "toggle@example.com")

	res, err := store.SetDisabled(ctx, u.ID, true)
	if err != nil {
		t.Fatalf("SetDisabled failed: %v", err)
	}
	if res.Matched != 1 || res.Modified != 1 {
		t.Errorf("expected 1/1 matched/modified, got %+v", res)
	}

	got, err := store.GetByEmail(ctx, "toggle@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if !got.IsDisabled {
		t.Error("expected user to be disabled")
	}

	// Unknown id: no existence check, zero matched.
	res, err = store.SetDisabled(ctx, primitive.NewObjectID(), true)
	if err != nil {
		t.Fatalf("SetDisabled(unknown) failed: %v", err)
	}
	if res.Matched != 0 {
		t.Errorf("expected 0 matched for unknown id, got %d", res.Matched)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "gone@example.com")

	n, err := store.Delete(ctx, u.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}

	n, err = store.Delete(ctx, u.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 deleted for absent user, got %d", n)
	}
}
