package approvalqueries_test

import (
	"testing"

	"github.com/spondon-bd/spondon/internal/app/store/queries/approvalqueries"
	"github.com/spondon-bd/spondon/internal/testutil"
)

func TestPendingDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	stranded := fixtures.CreateRequest(ctx, "a@x.com", "B+")
	fixtures.CreateApproved(ctx, stranded, "d@x.com")

	// Approved and cleanly moved: its request is gone.
	moved := fixtures.CreateRequest(ctx, "b@x.com", "B+")
	fixtures.CreateApproved(ctx, moved, "d@x.com")
	if _, err := db.Collection("requests").DeleteOne(ctx, map[string]any{"_id": moved.ID}); err != nil {
		t.Fatalf("delete moved request: %v", err)
	}

	// Still pending, never approved.
	fixtures.CreateRequest(ctx, "c@x.com", "B+")

	ids, err := approvalqueries.PendingDuplicates(ctx, db, 0)
	if err != nil {
		t.Fatalf("PendingDuplicates failed: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected 1 stranded id, got %d", len(ids))
	}
	if ids[0] != stranded.ID {
		t.Errorf("got %s, want %s", ids[0].Hex(), stranded.ID.Hex())
	}
}

func TestPendingDuplicates_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ids, err := approvalqueries.PendingDuplicates(ctx, db, 10)
	if err != nil {
		t.Fatalf("PendingDuplicates failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected none, got %d", len(ids))
	}
}
