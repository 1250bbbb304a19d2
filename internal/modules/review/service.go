package review

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"tourbook/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	reviews ReviewRepository
	tours   TourRepository
}

func NewService(reviews ReviewRepository, tours TourRepository) *Service {
	return &Service{reviews: reviews, tours: tours}
}

// SubmitReview persists a new review and synchronously recomputes the parent
// tour's aggregate rating. The two writes are separate effects: if the tour
// disappears between them, the recompute is logged and skipped while the
// review itself stays persisted. Two concurrent submissions for the same tour
// may race on the aggregate write (last writer wins); the review records
// themselves are never lost.
func (s *Service) SubmitReview(ctx context.Context, userID int64, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	if _, err := s.tours.GetByID(ctx, req.TourID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}

	rv := &domain.Review{
		TourID:  req.TourID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}

	if err := s.RecomputeTourRating(ctx, req.TourID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("rating_recompute_skipped tour_id=%d reason=tour_gone", req.TourID)
			return rv, nil
		}
		return nil, err
	}

	return rv, nil
}

// RecomputeTourRating reads every review for the tour and writes back
// round(mean * 10), or 0 when no reviews exist. Rounding is half away from
// zero. Idempotent: repeated calls with an unchanged review set store the
// same value.
func (s *Service) RecomputeTourRating(ctx context.Context, tourID int64) error {
	reviews, err := s.reviews.GetByTourID(ctx, tourID)
	if err != nil {
		return err
	}

	rating := 0
	if len(reviews) > 0 {
		sum := 0
		for _, rv := range reviews {
			sum += rv.Rating
		}
		mean := float64(sum) / float64(len(reviews))
		rating = int(math.Round(mean * 10))
	}

	return s.tours.UpdateRating(ctx, tourID, rating)
}

// ListReviewsForTour returns all reviews for the tour in insertion order.
func (s *Service) ListReviewsForTour(ctx context.Context, tourID int64) ([]domain.Review, error) {
	return s.reviews.GetByTourID(ctx, tourID)
}
