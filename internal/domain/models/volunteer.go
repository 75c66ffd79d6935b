// internal/domain/models/volunteer.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Volunteer is a person registered to help coordinate donations.
type Volunteer struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email    string             `bson:"email" json:"email"`
	JoinedAt time.Time          `bson:"joinedAt" json:"joinedAt"`

	Extra bson.M `bson:",inline" json:"-"`
}

type volunteerJSON Volunteer

func (v Volunteer) MarshalJSON() ([]byte, error) {
	return marshalFlat(volunteerJSON(v), v.Extra)
}

func (v *Volunteer) UnmarshalJSON(data []byte) error {
	var tmp volunteerJSON
	extra, err := unmarshalFlat(data, &tmp, []string{"email"}, "_id", "joinedAt")
	if err != nil {
		return err
	}
	*v = Volunteer(tmp)
	v.Extra = extra
	return nil
}
