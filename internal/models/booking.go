package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const StatusPending = "pending"

// Booking is a car-wash reservation. Most fields are stored with whatever
// JSON type the client sent (string or number). Status is the only field
// that changes after creation.
type Booking struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         any           `bson:"title" json:"title"`
	Duration      any           `bson:"duration" json:"duration"`
	Price         any           `bson:"price" json:"price"`
	Date          any           `bson:"date" json:"date"`
	Time          any           `bson:"time" json:"time"`
	Address1      any           `bson:"address1" json:"address1"`
	Address2      any           `bson:"address2" json:"address2"`
	City          any           `bson:"city" json:"city"`
	State         any           `bson:"state" json:"state"`
	PinCode       any           `bson:"pinCode" json:"pinCode"`
	FullName      any           `bson:"fullName" json:"fullName"`
	Email         string        `bson:"email" json:"email"`
	ContactNumber any           `bson:"contactNumber" json:"contactNumber"`
	Status        string        `bson:"status" json:"status"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
}
