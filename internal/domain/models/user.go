// internal/domain/models/user.go
package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered platform account. Email is the business key;
// everything else the client sends at registration is kept in Extra.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email      string             `bson:"email" json:"email"`
	IsDisabled bool               `bson:"isDisabled" json:"isDisabled"`

	Extra bson.M `bson:",inline" json:"-"`
}

type userJSON User

func (u User) MarshalJSON() ([]byte, error) {
	return marshalFlat(userJSON(u), u.Extra)
}

func (u *User) UnmarshalJSON(data []byte) error {
	var tmp userJSON
	extra, err := unmarshalFlat(data, &tmp, []string{"email", "isDisabled"}, "_id")
	if err != nil {
		return err
	}
	*u = User(tmp)
	u.Extra = extra
	return nil
}
