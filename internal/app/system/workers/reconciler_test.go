package workers_test

import (
	"testing"
	"time"

	"github.com/spondon-bd/spondon/internal/app/system/workers"
	"github.com/spondon-bd/spondon/internal/domain/models"
	"github.com/spondon-bd/spondon/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestApprovalReconciler_RunOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	core, logs := observer.New(zap.InfoLevel)
	w := workers.NewApprovalReconciler(db, zap.New(core), time.Minute)

	stranded := fixtures.CreateRequest(ctx, "a@x.com", "A+")
	fixtures.CreateApproved(ctx, stranded, "d@x.com")
	pending := fixtures.CreateRequest(ctx, "b@x.com", "A+")

	if n := w.RunOnce(ctx); n != 1 {
		t.Fatalf("RunOnce deleted %d, want 1", n)
	}
	if n := fixtures.Count(ctx, models.CollRequests, bson.M{"_id": stranded.ID}); n != 0 {
		t.Error("stranded request was not removed")
	}
	if n := fixtures.Count(ctx, models.CollRequests, bson.M{"_id": pending.ID}); n != 1 {
		t.Error("pending request must be left alone")
	}
	if n := fixtures.Count(ctx, models.CollApprovedRequests, nil); n != 1 {
		t.Errorf("approved records must be untouched, got %d", n)
	}
	if logs.FilterMessage("removed approved requests still pending").Len() != 1 {
		t.Error("expected a log entry for the cleanup")
	}

	// Nothing left to do.
	if n := w.RunOnce(ctx); n != 0 {
		t.Errorf("second RunOnce deleted %d, want 0", n)
	}
}

func TestApprovalReconciler_StartStop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	stranded := fixtures.CreateRequest(ctx, "a@x.com", "A+")
	fixtures.CreateApproved(ctx, stranded, "")

	w := workers.NewApprovalReconciler(db, zap.NewNop(), 20*time.Millisecond)
	w.Start()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if fixtures.Count(ctx, models.CollRequests, nil) == 0 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	w.Stop()

	if n := fixtures.Count(ctx, models.CollRequests, nil); n != 0 {
		t.Errorf("worker did not reconcile, %d requests left", n)
	}
}
