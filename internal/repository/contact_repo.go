package repository

import (
	"context"

	"carwash-backend/internal/database"
	"carwash-backend/internal/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type ContactRepo struct {
	collection *mongo.Collection
}

func NewContactRepo(db *mongo.Database) *ContactRepo {
	return &ContactRepo{
		collection: db.Collection(database.ContactsCollection),
	}
}

func (r *ContactRepo) Create(ctx context.Context, contact *models.Contact) error {
	result, err := r.collection.InsertOne(ctx, contact)
	if err != nil {
		return errors.Wrap(err, "insert contact")
	}
	contact.ID = result.InsertedID.(bson.ObjectID)
	return nil
}
