package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// ValidBookingStatus reports whether s is one of the three recognized states.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID     int64 `json:"id"`
	TourID int64 `json:"tour_id" validate:"required"`

	// UserID is nil for guest bookings.
	UserID *int64 `json:"user_id,omitempty"`

	// Contact snapshot taken at creation time, not linked live to User.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	PeopleCount int    `json:"people_count"`
	Notes       string `json:"notes,omitempty"`

	Status BookingStatus `json:"status"`

	// TotalPrice is computed once at creation from the tour price and party
	// size, and is never recomputed after later tour price changes.
	TotalPrice int `json:"total_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
