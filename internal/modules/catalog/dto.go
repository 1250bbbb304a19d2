package catalog

import "tourbook/internal/domain"

type CreateTourRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description" binding:"required"`
	Location    string              `json:"location" binding:"required"`
	Duration    string              `json:"duration"`
	Price       int                 `json:"price" binding:"required"`
	MaxPeople   int                 `json:"max_people" binding:"required"`
	Category    string              `json:"category" binding:"required"`
	Tags        []string            `json:"tags"`
	IsHot       bool                `json:"is_hot"`
	Included    []string            `json:"included"`
	Excluded    []string            `json:"excluded"`
	Program     string              `json:"program"`
	Route       []domain.RoutePoint `json:"route"`
}

// UpdateTourRequest supports partial updates: nil fields are left untouched.
type UpdateTourRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Location    *string              `json:"location"`
	Duration    *string              `json:"duration"`
	Price       *int                 `json:"price"`
	MaxPeople   *int                 `json:"max_people"`
	Category    *string              `json:"category"`
	Tags        *[]string            `json:"tags"`
	IsHot       *bool                `json:"is_hot"`
	Included    *[]string            `json:"included"`
	Excluded    *[]string            `json:"excluded"`
	Program     *string              `json:"program"`
	Route       *[]domain.RoutePoint `json:"route"`
}

type ListToursQuery struct {
	Category string `form:"category"`
	HotOnly  bool   `form:"hot"`
}
