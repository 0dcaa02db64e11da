package repository

import (
	"context"
	"errors"

	"armora/database"
	"armora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookingArchiveRepository persists terminal bookings as durable records,
// beyond the capped client-facing history list.
type BookingArchiveRepository interface {
	Create(ctx context.Context, booking models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListRecent(ctx context.Context, limit int64) ([]models.Booking, error)
}

type mongoArchiveRepo struct {
	coll *mongo.Collection
}

// NewMongoArchiveRepo returns a BookingArchiveRepository backed by MongoDB.
func NewMongoArchiveRepo() BookingArchiveRepository {
	db := database.MongoClient.Database("armora")
	return &mongoArchiveRepo{
		coll: db.Collection("booking_archive"),
	}
}

// Create inserts an archived booking. Archived records are immutable, so an
// existing record with the same ID is left untouched.
func (r *mongoArchiveRepo) Create(ctx context.Context, booking models.Booking) error {
	err := r.coll.FindOne(ctx, bson.M{"id": booking.ID, "status": booking.Status}).Err()
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	_, err = r.coll.InsertOne(ctx, booking)
	return err
}

// GetByID returns an archived booking by its booking ID.
func (r *mongoArchiveRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListRecent returns the most recently updated archived bookings.
func (r *mongoArchiveRepo) ListRecent(ctx context.Context, limit int64) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
