package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tourbook/internal/config"
	"tourbook/internal/database"
	"tourbook/internal/middleware"
	"tourbook/internal/modules/auth"
	"tourbook/internal/modules/booking"
	"tourbook/internal/modules/catalog"
	"tourbook/internal/modules/review"
	jwtsvc "tourbook/internal/pkg/jwt"
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
		log.Fatal(err)
	}

	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	tourRepo := repository.NewTourRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	catalogHandler := catalog.NewHandler(catalog.NewService(tourRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, tourRepo))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, tourRepo))

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)

		// guest-friendly: booking creation works without a token, but an
		// authenticated user gets linked to the booking
		optional := v1.Group("/")
		optional.Use(middleware.OptionalAuth(j))
		{
			bookingHandler.RegisterPublicRoutes(optional)
		}

		// authenticated
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterProtectedRoutes(protected)

			agency := protected.Group("/")
			agency.Use(middleware.AgencyOnly())
			{
				catalogHandler.RegisterAgencyRoutes(agency)
				bookingHandler.RegisterAgencyRoutes(agency)
			}
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
