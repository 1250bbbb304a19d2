package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"tourbook/internal/config"
	"tourbook/internal/database"
	"tourbook/internal/domain"
	"tourbook/internal/modules/booking"
	"tourbook/internal/modules/review"
	"tourbook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data, children first to keep foreign keys happy.
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM tours")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	tourRepo := repository.NewTourRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	bookingService := booking.NewService(bookingRepo, tourRepo)
	reviewService := review.NewService(reviewRepo, tourRepo)

	// ================== USERS ==================
	log.Println("Creating users...")

	admin := mustUser(ctx, userRepo, "admin@tourbook.io", "admin123", domain.RoleAdmin, "Admin", "")
	log.Println("Admin created:", admin.Email, "/ admin123")

	travelers := []*domain.User{
		mustUser(ctx, userRepo, "alice@example.com", "traveler123", domain.RoleTraveler, "Alice Morgan", ""),
		mustUser(ctx, userRepo, "bek@example.com", "traveler123", domain.RoleTraveler, "Bek Aliyev", ""),
		mustUser(ctx, userRepo, "dana@example.com", "traveler123", domain.RoleTraveler, "Dana Kim", ""),
	}

	agencies := []*domain.User{
		mustUser(ctx, userRepo, "contact@mountaintrails.io", "agency123", domain.RoleAgency, "Mountain Trails", "Mountain Trails LLP"),
		mustUser(ctx, userRepo, "hello@citybreaks.io", "agency123", domain.RoleAgency, "City Breaks", "City Breaks Ltd"),
	}

	// ================== TOURS ==================
	log.Println("Creating tours...")

	tours := []*domain.Tour{
		{
			AgencyID:    &agencies[0].ID,
			Title:       "Kolsai Lakes Trek",
			Description: "Three days of alpine lakes, horse trails and starry nights.",
			Location:    "Kolsai, Almaty Region",
			Duration:    "3 days / 2 nights",
			Price:       15000,
			MaxPeople:   8,
			Category:    "hiking",
			Tags:        []string{"mountains", "lakes", "camping"},
			IsHot:       true,
			Included:    []string{"transport", "guide", "meals"},
			Excluded:    []string{"personal gear"},
			Program:     "Day 1: lower lake. Day 2: Kaindy. Day 3: return.",
			Route: []domain.RoutePoint{
				{Name: "Saty village", Lat: 43.0172, Lng: 78.3790},
				{Name: "Lower Kolsai", Lat: 42.9861, Lng: 78.3239},
			},
		},
		{
			AgencyID:    &agencies[0].ID,
			Title:       "Charyn Canyon Day Trip",
			Description: "The Valley of Castles in one long, unforgettable day.",
			Location:    "Charyn, Almaty Region",
			Duration:    "1 day",
			Price:       20000,
			MaxPeople:   4,
			Category:    "sightseeing",
			Tags:        []string{"canyon", "photo"},
			Included:    []string{"transport", "guide"},
		},
		{
			AgencyID:    &agencies[1].ID,
			Title:       "Old Town Food Walk",
			Description: "Markets, street food and hidden courtyards with a local host.",
			Location:    "Almaty",
			Duration:    "4 hours",
			Price:       8000,
			MaxPeople:   10,
			Category:    "food",
			Tags:        []string{"food", "walking"},
			IsHot:       true,
			Included:    []string{"tastings", "guide"},
		},
	}
	for _, t := range tours {
		if err := tourRepo.Create(ctx, t); err != nil {
			log.Fatal("tour seed failed:", err)
		}
	}

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")

	if _, err := bookingService.CreateBooking(ctx, &travelers[0].ID, booking.CreateBookingRequest{
		TourID:      tours[0].ID,
		FirstName:   "Alice",
		LastName:    "Morgan",
		Email:       travelers[0].Email,
		Phone:       "+7 777 123 4567",
		PeopleCount: 2,
		Notes:       "Vegetarian meals please",
	}); err != nil {
		log.Fatal("booking seed failed:", err)
	}

	// Guest booking, no linked user.
	if _, err := bookingService.CreateBooking(ctx, nil, booking.CreateBookingRequest{
		TourID:      tours[1].ID,
		FirstName:   "Guest",
		LastName:    "Visitor",
		Email:       "guest@example.com",
		Phone:       "+7 700 000 0000",
		PeopleCount: 3,
	}); err != nil {
		log.Fatal("booking seed failed:", err)
	}

	// ================== REVIEWS ==================
	log.Println("Creating reviews...")

	seedReviews := []struct {
		tour   *domain.Tour
		user   *domain.User
		rating int
		text   string
	}{
		{tours[0], travelers[0], 5, "Stunning views, perfectly organized trek."},
		{tours[0], travelers[1], 4, "Great guide, the camp food could be better."},
		{tours[2], travelers[2], 5, "Best food tour I have ever taken, hands down."},
	}
	for _, sr := range seedReviews {
		if _, err := reviewService.SubmitReview(ctx, sr.user.ID, review.CreateReviewRequest{
			TourID:  sr.tour.ID,
			Rating:  sr.rating,
			Comment: sr.text,
		}); err != nil {
			log.Fatal("review seed failed:", err)
		}
	}

	log.Println("Seed complete.")
}

func mustUser(ctx context.Context, repo *repository.UserRepository, email, password string, role domain.UserRole, name, company string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         name,
		CompanyName:  company,
	}
	if err := repo.Create(ctx, u); err != nil {
		log.Fatal("user seed failed:", err)
	}
	return u
}
