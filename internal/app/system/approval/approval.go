// Package approval moves a pending blood request into the approved
// collection.
package approval

import (
	"context"
	"errors"
	"fmt"
	"time"

	approvedstore "github.com/spondon-bd/spondon/internal/app/store/approved"
	"github.com/spondon-bd/spondon/internal/app/system/normalize"
	"github.com/spondon-bd/spondon/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no pending request has the given id.
	ErrNotFound = errors.New("request not found")
	// ErrAlreadyApproved is returned when another approval of the same
	// request committed first.
	ErrAlreadyApproved = errors.New("request already approved")
)

// Requests is the subset of the request store the workflow needs.
type Requests interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.BloodRequest, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// Approved is the subset of the approved-request store the workflow needs.
type Approved interface {
	Insert(ctx context.Context, a models.ApprovedRequest) error
}

// Runner runs fn as one unit of work. *txn.Runner satisfies it.
type Runner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	requests Requests
	approved Approved
	runner   Runner
	log      *zap.Logger
	now      func() time.Time
}

func New(requests Requests, approved Approved, runner Runner, logger *zap.Logger) *Service {
	return &Service{
		requests: requests,
		approved: approved,
		runner:   runner,
		log:      logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Approve copies the request with id into approvedRequests and removes it
// from requests. The copy is inserted before the original is deleted, so a
// failure between the two leaves a duplicate (repaired by the reconciler)
// rather than a lost request.
func (s *Service) Approve(ctx context.Context, id primitive.ObjectID, donorEmail string) (models.ApprovedRequest, error) {
	var out models.ApprovedRequest

	err := s.runner.Run(ctx, func(ctx context.Context) error {
		req, err := s.requests.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrNotFound
			}
			return fmt.Errorf("load request: %w", err)
		}

		a := models.NewApprovedRequest(*req, normalize.Email(donorEmail), s.now())
		if err := s.approved.Insert(ctx, a); err != nil {
			if errors.Is(err, approvedstore.ErrAlreadyApproved) {
				return ErrAlreadyApproved
			}
			return fmt.Errorf("insert approved request: %w", err)
		}

		n, err := s.requests.Delete(ctx, id)
		if err != nil {
			return fmt.Errorf("delete request: %w", err)
		}
		if n == 0 {
			// Deleted by someone else after we read it. The approval stands.
			s.log.Warn("approved request vanished before delete",
				zap.String("request_id", id.Hex()))
		}

		out = a
		return nil
	})
	if err != nil {
		return models.ApprovedRequest{}, err
	}
	return out, nil
}
