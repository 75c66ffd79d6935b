// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spondon-bd/spondon/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

The unique indexes here are what make create idempotent: repositories
insert once and treat a duplicate-key error as "already exists".
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUniqueEmail(ctx, db.Collection(models.CollUsers)); err != nil {
		problems = append(problems, models.CollUsers+": "+err.Error())
	}
	if err := ensureUniqueEmail(ctx, db.Collection(models.CollActiveDonors)); err != nil {
		problems = append(problems, models.CollActiveDonors+": "+err.Error())
	}
	if err := ensureUniqueEmail(ctx, db.Collection(models.CollVolunteers)); err != nil {
		problems = append(problems, models.CollVolunteers+": "+err.Error())
	}
	if err := ensureRequests(ctx, db); err != nil {
		problems = append(problems, models.CollRequests+": "+err.Error())
	}
	if err := ensureApprovedRequests(ctx, db); err != nil {
		problems = append(problems, models.CollApprovedRequests+": "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name    string `bson:"name"`
	Key     bson.D `bson:"key"`
	Unique  *bool  `bson:"unique,omitempty"`
	Partial bson.D `bson:"partialFilterExpression,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func isTrue(b *bool) bool { return b != nil && *b }

// IsDuplicateKeyErr reports whether err is a duplicate-key error (E11000).
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, desired []mongo.IndexModel) error {
	existing := map[string]existingIndex{} // key signature -> index
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("list indexes: %w", err)
	}
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	cur.Close(ctx)

	var errs []string
	for _, m := range desired {
		var name string
		var unique, partial bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = isTrue(m.Options.Unique)
			partial = m.Options.PartialFilterExpression != nil
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[sig]; ok {
			if isTrue(ex.Unique) == unique && (len(ex.Partial) > 0) == partial && (name == "" || ex.Name == name) {
				zap.L().Debug("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", sig))
				continue
			}
			// Options or name differ: drop and recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if IsDuplicateKeyErr(err) && unique {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present on %s)", coll.Name(), name, sig))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			}
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", unique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

// stringField limits a unique index to documents where field is a string,
// so documents without the key never collide on null.
func stringField(field string) bson.D {
	return bson.D{{Key: field, Value: bson.D{{Key: "$type", Value: "string"}}}}
}

func ensureUniqueEmail(ctx context.Context, c *mongo.Collection) error {
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(stringField("email")).
				SetName("uniq_" + c.Name() + "_email"),
		},
	})
}

func ensureRequests(ctx context.Context, db *mongo.Database) error {
	c := db.Collection(models.CollRequests)
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "bloodGroup", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_requests_bloodgroup_id"),
		},
		{
			Keys:    bson.D{{Key: "requesterEmail", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_requests_requesteremail_id"),
		},
	})
}

func ensureApprovedRequests(ctx context.Context, db *mongo.Database) error {
	c := db.Collection(models.CollApprovedRequests)
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One approved copy per request. Also the key the reconciler joins on.
		{
			Keys: bson.D{{Key: "requestId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "requestId", Value: bson.D{{Key: "$type", Value: "objectId"}}}}).
				SetName("uniq_approvedrequests_requestid"),
		},
		{
			Keys:    bson.D{{Key: "donorEmail", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_approvedrequests_donoremail_id"),
		},
		{
			Keys:    bson.D{{Key: "requesterEmail", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_approvedrequests_requesteremail_id"),
		},
	})
}
