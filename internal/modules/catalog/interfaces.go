package catalog

import (
	"context"

	"tourbook/internal/domain"
	"tourbook/internal/repository"
)

// TourRepository defines the storage operations tour management uses.
// Delete is expected to cascade to dependent bookings and reviews.
type TourRepository interface {
	Create(ctx context.Context, t *domain.Tour) error
	GetByID(ctx context.Context, id int64) (*domain.Tour, error)
	List(ctx context.Context, f repository.TourFilter) ([]domain.Tour, error)
	Update(ctx context.Context, t *domain.Tour) error
	Delete(ctx context.Context, id int64) error
}
