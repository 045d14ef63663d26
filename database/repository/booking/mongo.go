package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"skyward/config"
	"skyward/database"
	"skyward/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingMirrorRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates the mirror booking repository.
func NewMongoBookingRepo() BookingMirrorRepository {
	coll := database.MongoClient.Database(config.AppConfig.MongoDatabase).Collection(bookingCollection)
	return &MongoBookingRepo{coll: coll}
}

// Add inserts a new booking document.
func (r *MongoBookingRepo) Add(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error adding booking %s to MongoDB: %w", booking.ID, err)
	}
	return nil
}

// Update replaces the document fields for an existing booking.
func (r *MongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": booking.ID}
	update := bson.M{"$set": booking}
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error updating booking %s in MongoDB: %w", booking.ID, err)
	}
	return nil
}
