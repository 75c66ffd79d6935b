// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/spondon-bd/spondon/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates the service's collections (if missing) and attaches
// JSON-Schema validators. Documents are otherwise free-form, so the schemas
// only pin the fields the service itself relies on. On servers that don't
// support collMod/validators we log and skip.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure(models.CollUsers, emailKeyedSchema(bson.M{"isDisabled": bson.M{"bsonType": "bool"}}))
	ensure(models.CollActiveDonors, emailKeyedSchema(bson.M{"activatedAt": bson.M{"bsonType": "date"}}))
	ensure(models.CollVolunteers, emailKeyedSchema(bson.M{"joinedAt": bson.M{"bsonType": "date"}}))
	ensure(models.CollRequests, requestsSchema())
	ensure(models.CollApprovedRequests, approvedRequestsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection idempotently makes sure <name> exists.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) error {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		return nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 48 {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 59 {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 115 {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

// emailKeyedSchema requires a string email and types the given extra properties.
func emailKeyedSchema(props bson.M) bson.M {
	properties := bson.M{"email": bson.M{"bsonType": "string"}}
	for k, v := range props {
		properties[k] = v
	}
	return bson.M{"$jsonSchema": bson.M{
		"bsonType":   "object",
		"required":   bson.A{"email"},
		"properties": properties,
	}}
}

func requestsSchema() bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"createdAt"},
		"properties": bson.M{
			"requesterEmail": bson.M{"bsonType": "string"},
			"bloodGroup":     bson.M{"bsonType": "string"},
			"createdAt":      bson.M{"bsonType": "date"},
		},
	}}
}

func approvedRequestsSchema() bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"status", "approvedAt"},
		"properties": bson.M{
			"status":     bson.M{"enum": bson.A{models.StatusApproved}},
			"approvedAt": bson.M{"bsonType": "date"},
			"requestId":  bson.M{"bsonType": "objectId"},
			"donorEmail": bson.M{"bsonType": "string"},
		},
	}}
}
