// internal/domain/models/approved.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusApproved is the only status an ApprovedRequest can carry.
const StatusApproved = "approved"

// ApprovedRequest is the terminal copy of a BloodRequest. It has its own id;
// RequestID records the id of the request it was approved from.
type ApprovedRequest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	RequestID      primitive.ObjectID `bson:"requestId" json:"requestId"`
	RequesterEmail string             `bson:"requesterEmail" json:"requesterEmail"`
	BloodGroup     string             `bson:"bloodGroup" json:"bloodGroup"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	DonorEmail     string             `bson:"donorEmail,omitempty" json:"donorEmail,omitempty"`
	ApprovedAt     time.Time          `bson:"approvedAt" json:"approvedAt"`
	Status         string             `bson:"status" json:"status"`

	Extra bson.M `bson:",inline" json:"-"`
}

// NewApprovedRequest copies every field of req into a new approved record
// stamped with approvedAt and status. The copy gets a fresh id. A non-empty
// donorEmail overrides the one the request was created with.
func NewApprovedRequest(req BloodRequest, donorEmail string, approvedAt time.Time) ApprovedRequest {
	if donorEmail == "" {
		donorEmail = req.DonorEmail
	}
	extra := cloneExtra(req.Extra)
	for _, k := range requestOwnedKeys {
		delete(extra, k)
	}
	if len(extra) == 0 {
		extra = nil
	}
	return ApprovedRequest{
		ID:             primitive.NewObjectID(),
		RequestID:      req.ID,
		RequesterEmail: req.RequesterEmail,
		BloodGroup:     req.BloodGroup,
		CreatedAt:      req.CreatedAt,
		DonorEmail:     donorEmail,
		ApprovedAt:     approvedAt,
		Status:         StatusApproved,
		Extra:          extra,
	}
}

type approvedRequestJSON ApprovedRequest

func (a ApprovedRequest) MarshalJSON() ([]byte, error) {
	return marshalFlat(approvedRequestJSON(a), a.Extra)
}

func (a *ApprovedRequest) UnmarshalJSON(data []byte) error {
	var tmp approvedRequestJSON
	extra, err := unmarshalFlat(data, &tmp, []string{
		"_id", "requestId", "requesterEmail", "bloodGroup", "createdAt",
		"donorEmail", "approvedAt", "status"})
	if err != nil {
		return err
	}
	*a = ApprovedRequest(tmp)
	a.Extra = extra
	return nil
}
