package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Contact struct {
	ID      bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string        `bson:"name" json:"name"`
	Email   string        `bson:"email" json:"email"`
	Message string        `bson:"message" json:"message"`
}
