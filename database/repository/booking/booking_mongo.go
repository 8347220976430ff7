package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"staybook/database/repository"
	"staybook/models"
	"staybook/services/availability"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
	listingColl *mongo.Collection
}

// NewMongoBookingRepo creates a booking repository on the "bookings" collection.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	repo := &MongoBookingRepo{
		bookingColl: db.Collection("bookings"),
		listingColl: db.Collection("listings"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := repository.NewContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "listingId", Value: 1}, {Key: "checkInDate", Value: 1}, {Key: "checkOutDate", Value: 1}}},
		{Keys: bson.D{{Key: "checkInDate", Value: 1}, {Key: "checkOutDate", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}
	if _, err := r.bookingColl.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// overlapFilter matches stored stays with checkIn < iv.CheckOut and checkOut > iv.CheckIn.
func overlapFilter(iv availability.Interval) bson.M {
	return bson.M{
		"checkInDate":  bson.M{"$lt": iv.CheckOut},
		"checkOutDate": bson.M{"$gt": iv.CheckIn},
	}
}

func (r *MongoBookingRepo) FindOverlapping(ctx context.Context, listingID string, iv availability.Interval) ([]models.Booking, error) {
	filter := overlapFilter(iv)
	filter["listingId"] = listingID
	return r.find(ctx, filter, nil)
}

func (r *MongoBookingRepo) FindOverlappingAny(ctx context.Context, iv availability.Interval) ([]models.Booking, error) {
	proj := options.Find().SetProjection(bson.M{"listingId": 1, "checkInDate": 1, "checkOutDate": 1})
	return r.find(ctx, overlapFilter(iv), proj)
}

func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.D{{Key: "checkInDate", Value: 1}}))
}

func (r *MongoBookingRepo) ListByListing(ctx context.Context, listingID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"listingId": listingID}, options.Find().SetSort(bson.D{{Key: "checkInDate", Value: 1}}))
}

func (r *MongoBookingRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	ctx, cancel := repository.NewContext(ctx, 2*repository.DefaultTimeout)
	defer cancel()

	if opts == nil {
		opts = options.Find()
	}
	cursor, err := r.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := repository.NewContext(ctx, repository.DefaultTimeout)
	defer cancel()

	var booking models.Booking
	if err := r.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, repository.TranslateError(err))
	}
	return &booking, nil
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := repository.NewContext(ctx, repository.DefaultTimeout)
	defer cancel()

	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	if _, err := r.bookingColl.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", repository.TranslateError(err))
	}
	return nil
}

func (r *MongoBookingRepo) Delete(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := repository.NewContext(ctx, repository.DefaultTimeout)
	defer cancel()

	var booking models.Booking
	if err := r.bookingColl.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		return nil, fmt.Errorf("failed to delete booking with id %s: %w", id, repository.TranslateError(err))
	}
	return &booking, nil
}
