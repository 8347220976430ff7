package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staybook/database/repository"
	"staybook/models"
	"staybook/services/availability"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoBookingRepo) CreateExclusive(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := repository.NewContext(ctx, 3*repository.DefaultTimeout)
	defer cancel()

	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	iv := availability.Of(*booking)

	txnFn := func(sc mongo.SessionContext) error {
		// Writing the listing document first makes concurrent transactions on
		// the same listing collide with a write conflict.
		res, err := r.listingColl.UpdateOne(sc,
			bson.M{"id": booking.ListingID},
			bson.M{"$inc": bson.M{"bookingSeq": 1}},
		)
		if err != nil {
			return fmt.Errorf("bump booking sequence failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return availability.ErrListingNotFound
		}

		filter := overlapFilter(iv)
		filter["listingId"] = booking.ListingID
		n, err := r.bookingColl.CountDocuments(sc, filter)
		if err != nil {
			return fmt.Errorf("overlap re-check failed: %w", err)
		}
		if n > 0 {
			return availability.ErrDatesUnavailable
		}

		if _, err := r.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", repository.TranslateError(err))
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return transactionError(booking.ListingID, err)
	}
	return nil
}

// writeConflictCode is the server code for WriteConflict.
const writeConflictCode = 112

// transactionError maps a failed booking transaction. Only a write conflict
// means another booking won the listing; other transient failures such as
// network errors or a stepdown stay server errors.
func transactionError(listingID string, err error) error {
	if isWriteConflict(err) {
		return fmt.Errorf("concurrent booking on listing %s: %w", listingID, availability.ErrDatesUnavailable)
	}
	if errors.Is(err, availability.ErrDatesUnavailable) || errors.Is(err, availability.ErrListingNotFound) {
		return err
	}
	return fmt.Errorf("booking transaction failed: %w", err)
}

func isWriteConflict(err error) bool {
	var se mongo.ServerError
	return errors.As(err, &se) && se.HasErrorCode(writeConflictCode)
}
