// Package txn runs multi-collection writes inside a MongoDB transaction
// when the deployment supports one, and sequentially when it does not.
//
// Transactions require a replica set or sharded cluster. Development and
// small deployments often run a standalone mongod; there the runner falls
// back to executing the callback without a transaction, so callers must
// order their writes so that a partial failure is recoverable.
package txn

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Runner executes callbacks in a transaction on Client.
type Runner struct {
	Client *mongo.Client
	Log    *zap.Logger

	unsupported atomic.Bool
	warnOnce    sync.Once
}

// New constructs a Runner. A nil client yields a runner that always runs
// callbacks without a transaction.
func New(client *mongo.Client, logger *zap.Logger) *Runner {
	return &Runner{Client: client, Log: logger}
}

// Run executes fn inside a transaction. The context passed to fn carries the
// session, so store calls made with it join the transaction. If the server
// reports that transactions are unsupported, fn is run again without one;
// the aborted attempt has no effect.
func (r *Runner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if r == nil || r.Client == nil || r.unsupported.Load() {
		return fn(ctx)
	}

	sess, err := r.Client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			r.fallBack(err)
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		r.fallBack(err)
		return fn(ctx)
	}
	return err
}

// Transactional reports whether the runner still attempts transactions.
func (r *Runner) Transactional() bool {
	return r != nil && r.Client != nil && !r.unsupported.Load()
}

func (r *Runner) fallBack(err error) {
	r.unsupported.Store(true)
	r.warnOnce.Do(func() {
		if r.Log != nil {
			r.Log.Warn("transactions not supported by this deployment; running multi-step writes sequentially",
				zap.Error(err))
		}
	})
}

// IsNotSupported reports whether err means the server cannot run
// multi-document transactions (standalone mongod, or an operation that is
// illegal inside a transaction).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case 20, 51, 263: // IllegalOperation, IllegalOperation (legacy), OperationNotSupportedInTransaction
			return true
		}
	}

	s := strings.ToLower(err.Error())
	has := func(a, b string) bool { return strings.Contains(s, a) && strings.Contains(s, b) }
	return has("transaction", "replica set") ||
		has("session", "not supported") ||
		has("transaction", "session") ||
		has("illegal operation", "transaction")
}
