// Package approvalqueries provides read-only queries that span the requests
// and approvedRequests collections.
package approvalqueries

import (
	"context"

	"github.com/spondon-bd/spondon/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultBatch bounds how many stranded ids one PendingDuplicates call returns.
const DefaultBatch = 500

// PendingDuplicates returns ids of requests that still sit in the requests
// collection although an approved copy already records them as requestId.
// Those are left behind when an approval inserted its copy but the delete of
// the original failed on a server without transactions.
func PendingDuplicates(ctx context.Context, db *mongo.Database, limit int) ([]primitive.ObjectID, error) {
	if limit <= 0 {
		limit = DefaultBatch
	}

	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"requestId": bson.M{"$type": "objectId"}}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         models.CollRequests,
			"localField":   "requestId",
			"foreignField": "_id",
			"as":           "pending",
		}}},
		bson.D{{Key: "$match", Value: bson.M{"pending.0": bson.M{"$exists": true}}}},
		bson.D{{Key: "$project", Value: bson.M{"_id": 0, "requestId": 1}}},
		bson.D{{Key: "$limit", Value: limit}},
	}

	cur, err := db.Collection(models.CollApprovedRequests).Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		RequestID primitive.ObjectID `bson:"requestId"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.RequestID)
	}
	return ids, nil
}
