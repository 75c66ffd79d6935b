// internal/domain/models/request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BloodRequest is a pending request for blood. It lives in the requests
// collection until it is approved (moved to approvedRequests) or deleted.
type BloodRequest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	RequesterEmail string             `bson:"requesterEmail" json:"requesterEmail"`
	BloodGroup     string             `bson:"bloodGroup" json:"bloodGroup"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	DonorEmail     string             `bson:"donorEmail,omitempty" json:"donorEmail,omitempty"`

	Extra bson.M `bson:",inline" json:"-"`
}

// requestOwnedKeys are names the approval workflow sets on the approved
// copy. A pending request may not carry them.
var requestOwnedKeys = []string{"status", "approvedAt", "requestId"}

type bloodRequestJSON BloodRequest

func (r BloodRequest) MarshalJSON() ([]byte, error) {
	return marshalFlat(bloodRequestJSON(r), r.Extra)
}

func (r *BloodRequest) UnmarshalJSON(data []byte) error {
	var tmp bloodRequestJSON
	ignored := append([]string{"_id", "createdAt"}, requestOwnedKeys...)
	extra, err := unmarshalFlat(data, &tmp, []string{"requesterEmail", "bloodGroup", "donorEmail"}, ignored...)
	if err != nil {
		return err
	}
	*r = BloodRequest(tmp)
	r.Extra = extra
	return nil
}
