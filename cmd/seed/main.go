// Command seed fills a development database with demo users, listings and
// bookings. Existing documents in those collections are removed first.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"staybook/config"
	"staybook/database"
	bookingRepoPkg "staybook/database/repository/booking"
	listingRepoPkg "staybook/database/repository/listing"
	userRepoPkg "staybook/database/repository/user"
	"staybook/models"
	"staybook/services/availability"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const demoPassword = "Password1234"

func main() {
	config.LoadConfig()
	database.InitDB()
	db := database.Database()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, name := range []string{"users", "listings", "bookings"} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", name, err)
		}
	}

	users := userRepoPkg.NewMongoUserRepo(db)
	listings := listingRepoPkg.NewMongoListingRepo(db)
	bookings := bookingRepoPkg.NewMongoBookingRepo(db)

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	accounts := map[string]*models.User{}
	for _, role := range []string{models.RoleAdmin, models.RoleHost, models.RoleUser} {
		u := &models.User{
			ID:           uuid.NewString(),
			Name:         fmt.Sprintf("Demo %s", role),
			Email:        fmt.Sprintf("%s@staybook.test", role),
			PasswordHash: string(hashed),
			Role:         role,
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("Failed to insert %s user: %v", role, err)
		}
		accounts[role] = u
	}

	locations := []string{"Nairobi", "Mombasa", "Lamu", "Naivasha", "Kisumu"}
	statuses := []string{models.ListingApproved, models.ListingApproved, models.ListingApproved, models.ListingPending, models.ListingRejected}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var approved []*models.Listing
	for i := 1; i <= 15; i++ {
		l := &models.Listing{
			ID:             uuid.NewString(),
			Title:          fmt.Sprintf("Demo stay number %02d in %s", i, locations[i%len(locations)]),
			Description:    "A comfortable place to stay, seeded for development.",
			Location:       locations[i%len(locations)],
			Price:          float64(40 + rng.Intn(260)),
			Amenities:      []string{"wifi", "kitchen"},
			MaxGuests:      1 + rng.Intn(8),
			TourType:       models.TourTypes[i%len(models.TourTypes)],
			Status:         statuses[i%len(statuses)],
			Host:           accounts[models.RoleHost].ID,
			RatingsAverage: models.RoundRating(3 + rng.Float64()*2),
		}
		if err := listings.Create(ctx, l); err != nil {
			log.Fatalf("Failed to insert listing: %v", err)
		}
		if l.IsBookable() {
			approved = append(approved, l)
		}
	}

	// Back-to-back stays starting next week; adjacent stays share a boundary day.
	guest := accounts[models.RoleUser]
	start := availability.StartOfDay(time.Now().AddDate(0, 0, 7), config.AppConfig.Location())
	inserted := 0
	for _, l := range approved {
		checkIn := start
		for n := 0; n < 3; n++ {
			nights := 1 + rng.Intn(4)
			checkOut := checkIn.AddDate(0, 0, nights)
			b := &models.Booking{
				ID:           uuid.NewString(),
				ListingID:    l.ID,
				UserID:       guest.ID,
				CheckInDate:  checkIn,
				CheckOutDate: checkOut,
				NumGuests:    1,
				TotalPrice:   l.Price * float64(nights),
				Paid:         true,
				CreatedAt:    time.Now(),
			}
			if err := bookings.Create(ctx, b); err != nil {
				log.Fatalf("Failed to insert booking: %v", err)
			}
			inserted++
			checkIn = checkOut
		}
	}

	fmt.Printf("Seeded %d users, 15 listings (%d bookable) and %d bookings. Password for all accounts: %s\n",
		len(accounts), len(approved), inserted, demoPassword)
}
