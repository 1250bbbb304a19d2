package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"tourbook/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	tours    TourRepository
}

func NewService(bookings BookingRepository, tours TourRepository) *Service {
	return &Service{bookings: bookings, tours: tours}
}

// CreateBooking validates the request against the referenced tour and persists
// a new pending booking. The total price is a snapshot:
// round(tour.Price * peopleCount / tour.MaxPeople), rounded half away from
// zero, and is never recomputed after later tour price changes.
func (s *Service) CreateBooking(ctx context.Context, userID *int64, req CreateBookingRequest) (*domain.Booking, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)

	if firstName == "" {
		return nil, fmt.Errorf("%w: first_name is required", ErrValidation)
	}
	if lastName == "" {
		return nil, fmt.Errorf("%w: last_name is required", ErrValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrValidation)
	}

	tour, err := s.tours.GetByID(ctx, req.TourID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}

	if req.PeopleCount < 1 {
		return nil, fmt.Errorf("%w: people_count must be at least 1", ErrValidation)
	}
	if req.PeopleCount > tour.MaxPeople {
		return nil, fmt.Errorf("%w: people_count must be at most %d (tour capacity)", ErrValidation, tour.MaxPeople)
	}

	total := int(math.Round(float64(tour.Price) * float64(req.PeopleCount) / float64(tour.MaxPeople)))

	b := &domain.Booking{
		TourID:      tour.ID,
		UserID:      userID,
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		Phone:       phone,
		PeopleCount: req.PeopleCount,
		Notes:       req.Notes,
		Status:      domain.BookingPending,
		TotalPrice:  total,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBookings returns all bookings, or only those for one tour when tourID
// is set. Insertion order.
func (s *Service) ListBookings(ctx context.Context, tourID *int64) ([]domain.Booking, error) {
	if tourID != nil {
		return s.bookings.GetByTourID(ctx, *tourID)
	}
	return s.bookings.GetAll(ctx)
}

// ListBookingsForUser returns the bookings linked to the given account.
// Guest bookings have no user link and never show up here.
func (s *Service) ListBookingsForUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.GetByUserID(ctx, userID)
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// UpdateBookingStatus moves a booking to any of the three recognized states.
// The transition set is deliberately permissive: any state can reach any
// other, including itself. Only the agency owning the tour (or an admin) may
// change the status.
func (s *Service) UpdateBookingStatus(ctx context.Context, bookingID, actorUserID int64, actorRole domain.UserRole, newStatus string) (*domain.Booking, error) {
	status := domain.BookingStatus(newStatus)
	if !domain.ValidBookingStatus(status) {
		return nil, fmt.Errorf("%w: status must be one of pending, confirmed, cancelled", ErrValidation)
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if actorRole != domain.RoleAdmin {
		if actorRole != domain.RoleAgency {
			return nil, ErrForbidden
		}
		tour, err := s.tours.GetByID(ctx, b.TourID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrForbidden
			}
			return nil, err
		}
		if tour.AgencyID == nil || *tour.AgencyID != actorUserID {
			return nil, ErrForbidden
		}
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}
