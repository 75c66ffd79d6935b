// internal/domain/models/donor.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActiveDonor is present in the activeDonors collection for as long as the
// donor is available to donate. Deactivation deletes the document.
type ActiveDonor struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email       string             `bson:"email" json:"email"`
	ActivatedAt time.Time          `bson:"activatedAt" json:"activatedAt"`

	Extra bson.M `bson:",inline" json:"-"`
}

type activeDonorJSON ActiveDonor

func (d ActiveDonor) MarshalJSON() ([]byte, error) {
	return marshalFlat(activeDonorJSON(d), d.Extra)
}

func (d *ActiveDonor) UnmarshalJSON(data []byte) error {
	var tmp activeDonorJSON
	extra, err := unmarshalFlat(data, &tmp, []string{"email"}, "_id", "activatedAt", "isActive")
	if err != nil {
		return err
	}
	*d = ActiveDonor(tmp)
	d.Extra = extra
	return nil
}

// DonorStatus is the read view of a donor lookup. IsActive is derived from
// the presence of the donor document at read time and is never stored.
type DonorStatus struct {
	ActiveDonor
	IsActive bool
}

func (s DonorStatus) MarshalJSON() ([]byte, error) {
	extra := cloneExtra(s.Extra)
	if extra == nil {
		extra = bson.M{}
	}
	extra["isActive"] = s.IsActive
	return marshalFlat(activeDonorJSON(s.ActiveDonor), extra)
}
