// internal/app/features/requests/handler.go
package requests

import (
	approvedstore "github.com/spondon-bd/spondon/internal/app/store/approved"
	requeststore "github.com/spondon-bd/spondon/internal/app/store/requests"
	"github.com/spondon-bd/spondon/internal/app/system/approval"
	"github.com/spondon-bd/spondon/internal/app/system/txn"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for blood requests.
type Handler struct {
	Requests *requeststore.Store
	Approval *approval.Service
	Log      *zap.Logger
}

// NewHandler constructs a requests Handler. Approvals run in a transaction
// on db's client when the deployment supports one.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	reqs := requeststore.New(db)
	return &Handler{
		Requests: reqs,
		Approval: approval.New(reqs, approvedstore.New(db), txn.New(db.Client(), logger), logger),
		Log:      logger,
	}
}
