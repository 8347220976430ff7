package listingRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"staybook/database/repository"
	"staybook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoListingRepo implements ListingRepository using MongoDB.
type MongoListingRepo struct {
	coll *mongo.Collection
}

// NewMongoListingRepo creates a listing repository on the "listings" collection.
func NewMongoListingRepo(db *mongo.Database) ListingRepository {
	repo := &MongoListingRepo{coll: db.Collection("listings")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create listing indexes: %v\n", err)
	}
	return repo
}

func (r *MongoListingRepo) ensureIndexes() error {
	ctx, cancel := repository.NewContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "price", Value: 1}, {Key: "ratingsAverage", Value: -1}}},
		{Keys: bson.D{{Key: "location", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "host", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoListingRepo) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	ctx, cancel := repository.NewContext(ctx, repository.DefaultTimeout)
	defer cancel()

	var listing models.Listing
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&listing); err != nil {
		return nil, fmt.Errorf("failed to fetch listing with id %s: %w", id, repository.TranslateError(err))
	}
	return &listing, nil
}

func (r *MongoListingRepo) Create(ctx context.Context, listing *models.Listing) error {
	ctx, cancel := repository.NewContext(ctx, repository.DefaultTimeout)
	defer cancel()

	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	if listing.Images == nil {
		listing.Images = []string{}
	}
	if listing.Amenities == nil {
		listing.Amenities = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, listing); err != nil {
		return fmt.Errorf("failed to create listing: %w", repository.TranslateError(err))
	}
	return nil
}

// Update writes only the whitelisted fields present in upd.
func (r *MongoListingRepo) Update(ctx context.Context, id string, upd models.ListingUpdate) (*models.Listing, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Amenities != nil {
		set["amenities"] = *upd.Amenities
	}
	if upd.MaxGuests != nil {
		set["maxGuests"] = *upd.MaxGuests
	}
	if upd.TourType != nil {
		set["tourType"] = *upd.TourType
	}
	if upd.Images != nil {
		set["images"] = *upd.Images
	}
	if upd.ImagePublicIDs != nil {
		set["imagePublicIds"] = *upd.ImagePublicIDs
	}
	return r.findAndSet(ctx, id, set)
}

func (r *MongoListingRepo) UpdateStatus(ctx context.Context, id, status string) (*models.Listing, error) {
	return r.findAndSet(ctx, id, bson.M{"status": status, "updatedAt": time.Now()})
}

func (r *MongoListingRepo) findAndSet(ctx context.Context, id string, set bson.M) (*models.Listing, error) {
	ctx, cancel := repository.NewContext(ctx, repository.DefaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var listing models.Listing
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&listing); err != nil {
		return nil, fmt.Errorf("failed to update listing with id %s: %w", id, repository.TranslateError(err))
	}
	return &listing, nil
}

func (r *MongoListingRepo) Delete(ctx context.Context, id string) (*models.Listing, error) {
	ctx, cancel := repository.NewContext(ctx, repository.DefaultTimeout)
	defer cancel()

	var listing models.Listing
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&listing); err != nil {
		return nil, fmt.Errorf("failed to delete listing with id %s: %w", id, repository.TranslateError(err))
	}
	return &listing, nil
}

func (r *MongoListingRepo) Search(ctx context.Context, c SearchCriteria) ([]models.Listing, int64, error) {
	ctx, cancel := repository.NewContext(ctx, 10*repository.DefaultTimeout)
	defer cancel()

	filter := BuildFilter(c)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	opts := options.Find().SetSort(buildSort(c.Sort))
	if c.Skip > 0 {
		opts.SetSkip(c.Skip)
	}
	if c.Limit > 0 {
		opts.SetLimit(c.Limit)
	}
	if len(c.Fields) > 0 {
		proj := bson.M{"id": 1}
		for _, f := range c.Fields {
			proj[f] = 1
		}
		opts.SetProjection(proj)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search listings: %w", err)
	}
	defer cursor.Close(ctx)

	listings := []models.Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode listings: %w", err)
	}
	return listings, total, nil
}

// BuildFilter translates search criteria into a MongoDB filter document.
func BuildFilter(c SearchCriteria) bson.M {
	filter := bson.M{}
	if c.Status != "" {
		filter["status"] = c.Status
	}
	if c.Location != "" {
		filter["location"] = bson.M{"$regex": regexp.QuoteMeta(c.Location), "$options": "i"}
	}
	if c.TourType != "" {
		filter["tourType"] = c.TourType
	}

	ranges := map[string]bson.M{}
	if c.MinGuests > 0 {
		ranges["maxGuests"] = bson.M{"$gte": c.MinGuests}
	}
	for _, rf := range c.Ranges {
		cond, ok := ranges[rf.Field]
		if !ok {
			cond = bson.M{}
			ranges[rf.Field] = cond
		}
		cond["$"+rf.Op] = rf.Value
	}
	for field, cond := range ranges {
		filter[field] = cond
	}

	if len(c.ExcludeIDs) > 0 {
		filter["id"] = bson.M{"$nin": c.ExcludeIDs}
	}
	return filter
}

func buildSort(fields []SortField) bson.D {
	if len(fields) == 0 {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	sort := make(bson.D, 0, len(fields)+1)
	hasID := false
	for _, f := range fields {
		dir := 1
		if f.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: f.Field, Value: dir})
		if f.Field == "id" {
			hasID = true
		}
	}
	// stable pagination
	if !hasID {
		sort = append(sort, bson.E{Key: "id", Value: 1})
	}
	return sort
}
