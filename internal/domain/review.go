package domain

import "time"

type Review struct {
	ID        int64     `json:"id"`
	TourID    int64     `json:"tour_id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
