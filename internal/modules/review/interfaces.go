package review

import (
	"context"

	"tourbook/internal/domain"
)

// ReviewRepository defines the storage operations the aggregator uses.
type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByTourID(ctx context.Context, tourID int64) ([]domain.Review, error)
}

// TourRepository gives the review service the tour existence check plus the
// derived-rating write-back.
type TourRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tour, error)
	UpdateRating(ctx context.Context, id int64, rating int) error
}
