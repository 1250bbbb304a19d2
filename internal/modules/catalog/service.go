package catalog

import (
	"context"
	"errors"
	"fmt"

	"tourbook/internal/domain"
	"tourbook/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	tours TourRepository
}

func NewService(tours TourRepository) *Service {
	return &Service{tours: tours}
}

func (s *Service) CreateTour(ctx context.Context, user *domain.User, req CreateTourRequest) (*domain.Tour, error) {
	if user.Role != domain.RoleAgency && user.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if req.MaxPeople < 1 {
		return nil, fmt.Errorf("%w: max_people must be at least 1", ErrValidation)
	}

	agencyID := user.ID
	tour := &domain.Tour{
		AgencyID:    &agencyID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Duration:    req.Duration,
		Price:       req.Price,
		MaxPeople:   req.MaxPeople,
		Category:    req.Category,
		Tags:        req.Tags,
		IsHot:       req.IsHot,
		Included:    req.Included,
		Excluded:    req.Excluded,
		Program:     req.Program,
		Route:       req.Route,
	}

	if err := s.tours.Create(ctx, tour); err != nil {
		return nil, err
	}
	return tour, nil
}

func (s *Service) GetTour(ctx context.Context, id int64) (*domain.Tour, error) {
	t, err := s.tours.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) ListTours(ctx context.Context, q ListToursQuery) ([]domain.Tour, error) {
	return s.tours.List(ctx, repository.TourFilter{
		Category: q.Category,
		HotOnly:  q.HotOnly,
	})
}

func (s *Service) ListToursByAgency(ctx context.Context, agencyID int64) ([]domain.Tour, error) {
	return s.tours.List(ctx, repository.TourFilter{AgencyID: &agencyID})
}

// UpdateTour applies a partial update. Only the owning agency (or an admin)
// may modify a tour; the derived rating is never writable here.
func (s *Service) UpdateTour(ctx context.Context, user *domain.User, tourID int64, req UpdateTourRequest) (*domain.Tour, error) {
	tour, err := s.GetTour(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(user, tour); err != nil {
		return nil, err
	}

	if req.Title != nil {
		tour.Title = *req.Title
	}
	if req.Description != nil {
		tour.Description = *req.Description
	}
	if req.Location != nil {
		tour.Location = *req.Location
	}
	if req.Duration != nil {
		tour.Duration = *req.Duration
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
		tour.Price = *req.Price
	}
	if req.MaxPeople != nil {
		if *req.MaxPeople < 1 {
			return nil, fmt.Errorf("%w: max_people must be at least 1", ErrValidation)
		}
		tour.MaxPeople = *req.MaxPeople
	}
	if req.Category != nil {
		tour.Category = *req.Category
	}
	if req.Tags != nil {
		tour.Tags = *req.Tags
	}
	if req.IsHot != nil {
		tour.IsHot = *req.IsHot
	}
	if req.Included != nil {
		tour.Included = *req.Included
	}
	if req.Excluded != nil {
		tour.Excluded = *req.Excluded
	}
	if req.Program != nil {
		tour.Program = *req.Program
	}
	if req.Route != nil {
		tour.Route = *req.Route
	}

	if err := s.tours.Update(ctx, tour); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tour, nil
}

// DeleteTour removes the listing; the repository cascades the delete to the
// tour's bookings and reviews.
func (s *Service) DeleteTour(ctx context.Context, user *domain.User, tourID int64) error {
	tour, err := s.GetTour(ctx, tourID)
	if err != nil {
		return err
	}
	if err := s.authorize(user, tour); err != nil {
		return err
	}

	if err := s.tours.Delete(ctx, tourID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) authorize(user *domain.User, tour *domain.Tour) error {
	if user.Role == domain.RoleAdmin {
		return nil
	}
	if user.Role != domain.RoleAgency {
		return ErrForbidden
	}
	if tour.AgencyID == nil || *tour.AgencyID != user.ID {
		return ErrForbidden
	}
	return nil
}
