package repository

import (
	"context"

	"carwash-backend/internal/database"
	"carwash-backend/internal/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type BookingRepo struct {
	collection *mongo.Collection
}

func NewBookingRepo(db *mongo.Database) *BookingRepo {
	return &BookingRepo{
		collection: db.Collection(database.BookingsCollection),
	}
}

func (r *BookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return errors.Wrap(err, "insert booking")
	}
	booking.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

// FindByID returns nil, nil when id is unknown or not a valid ObjectID hex.
func (r *BookingRepo) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var booking models.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find booking")
	}
	return &booking, nil
}

// UpdateStatus overwrites only the status field. It reports false when no
// booking matched id.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"status": status},
	})
	if err != nil {
		return false, errors.Wrap(err, "update booking status")
	}
	return result.MatchedCount > 0, nil
}

// List returns bookings newest first. An empty email lists every booking.
func (r *BookingRepo) List(ctx context.Context, email string) ([]models.Booking, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find bookings")
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, errors.Wrap(err, "decode bookings")
	}
	return bookings, nil
}

// EnsureIndexes creates the indexes used by List.
func (r *BookingRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("email_createdAt"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("createdAt_desc"),
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
