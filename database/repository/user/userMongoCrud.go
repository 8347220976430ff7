// File: database/repository/user/userMongoCrud.go
package userRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"staybook/database/repository"
	"staybook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new user document.
func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := repository.NewContext(ctx, repository.DefaultTimeout)
	defer cancel()

	now := time.Now()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", repository.TranslateError(err))
	}
	return nil
}

// Update applies the non-nil fields of upd.
func (r *MongoUserRepo) Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	ctx, cancel := repository.NewContext(ctx, repository.DefaultTimeout)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if upd.Name != nil {
		set["name"] = strings.TrimSpace(*upd.Name)
	}
	if upd.Email != nil {
		set["email"] = strings.ToLower(strings.TrimSpace(*upd.Email))
	}
	if upd.Role != nil {
		set["role"] = *upd.Role
	}
	if upd.Photo != nil {
		set["photo"] = *upd.Photo
	}
	if upd.PhotoPublicID != nil {
		set["photoPublicId"] = *upd.PhotoPublicID
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(safeProjection)

	var user models.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user with id %s: %w", id, repository.TranslateError(err))
	}
	return &user, nil
}

// Delete removes a user document by its ID.
func (r *MongoUserRepo) Delete(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := repository.NewContext(ctx, repository.DefaultTimeout)
	defer cancel()

	var user models.User
	opts := options.FindOneAndDelete().SetProjection(safeProjection)
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"id": id}, opts).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to delete user with id %s: %w", id, repository.TranslateError(err))
	}
	return &user, nil
}
