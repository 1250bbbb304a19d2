package booking

import (
	"context"

	"tourbook/internal/domain"
)

// BookingRepository defines the storage operations the booking service uses.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetAll(ctx context.Context) ([]domain.Booking, error)
	GetByTourID(ctx context.Context, tourID int64) ([]domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
}

// TourRepository covers only the lookup the booking service needs for
// capacity and price accounting.
type TourRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tour, error)
}
