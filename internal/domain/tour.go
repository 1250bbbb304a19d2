package domain

import "time"

// RoutePoint is one named stop on a tour itinerary map.
type RoutePoint struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type Tour struct {
	ID          int64  `json:"id"`
	AgencyID    *int64 `json:"agency_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Duration    string `json:"duration"`

	// Price is the total price for a full group of MaxPeople, in minor currency units.
	Price     int `json:"price"`
	MaxPeople int `json:"max_people"`

	// Rating is the mean of all review ratings scaled by 10 (47 means 4.7).
	// Derived from reviews, never set directly.
	Rating int `json:"rating"`

	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
	IsHot    bool     `json:"is_hot"`

	Included []string     `json:"included,omitempty"`
	Excluded []string     `json:"excluded,omitempty"`
	Program  string       `json:"program,omitempty"`
	Route    []RoutePoint `json:"route,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
