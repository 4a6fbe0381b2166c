package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is stored exactly as submitted on signup. Password is kept in plain
// text and compared by equality on login.
type User struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string        `bson:"name" json:"name"`
	Email    string        `bson:"email" json:"email"`
	Password string        `bson:"password" json:"password"`
}
