// internal/app/system/workers/reconciler.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/spondon-bd/spondon/internal/app/store/queries/approvalqueries"
	requeststore "github.com/spondon-bd/spondon/internal/app/store/requests"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ApprovalReconciler is a background worker that deletes pending requests
// whose approved copy already exists.
type ApprovalReconciler struct {
	db       *mongo.Database
	requests *requeststore.Store
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewApprovalReconciler creates a reconciler that runs every interval.
func NewApprovalReconciler(db *mongo.Database, logger *zap.Logger, interval time.Duration) *ApprovalReconciler {
	return &ApprovalReconciler{
		db:       db,
		requests: requeststore.New(db),
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background reconciliation loop.
func (w *ApprovalReconciler) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("approval reconciler started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *ApprovalReconciler) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("approval reconciler stopped")
}

func (w *ApprovalReconciler) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			w.RunOnce(ctx)
			cancel()
		}
	}
}

// RunOnce performs a single reconciliation pass and returns how many
// stranded requests were deleted.
func (w *ApprovalReconciler) RunOnce(ctx context.Context) int64 {
	ids, err := approvalqueries.PendingDuplicates(ctx, w.db, approvalqueries.DefaultBatch)
	if err != nil {
		w.log.Error("failed to find approved requests still pending", zap.Error(err))
		return 0
	}
	if len(ids) == 0 {
		return 0
	}

	count, err := w.requests.DeleteMany(ctx, ids)
	if err != nil {
		w.log.Error("failed to delete approved requests still pending",
			zap.Int("found", len(ids)), zap.Error(err))
		return 0
	}

	w.log.Info("removed approved requests still pending", zap.Int64("count", count))
	return count
}
