package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"tourbook/internal/domain"
	"tourbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts browsing endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/tours", h.ListTours)
	rg.GET("/tours/:id", h.GetTour)
}

// RegisterAgencyRoutes mounts listing management for agencies/admins.
func (h *Handler) RegisterAgencyRoutes(rg *gin.RouterGroup) {
	rg.POST("/tours", h.CreateTour)
	rg.PATCH("/tours/:id", h.UpdateTour)
	rg.DELETE("/tours/:id", h.DeleteTour)
	rg.GET("/agency/tours", h.ListMyTours)
}

func (h *Handler) ListTours(c *gin.Context) {
	var q ListToursQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	tours, err := h.service.ListTours(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tours")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tours": tours})
}

func (h *Handler) GetTour(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid tour id")
		return
	}

	tour, err := h.service.GetTour(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tour": tour})
}

func (h *Handler) CreateTour(c *gin.Context) {
	var req CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	tour, err := h.service.CreateTour(c.Request.Context(), actor(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"tour": tour})
}

func (h *Handler) UpdateTour(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid tour id")
		return
	}

	var req UpdateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	tour, err := h.service.UpdateTour(c.Request.Context(), actor(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tour": tour})
}

func (h *Handler) DeleteTour(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid tour id")
		return
	}

	if err := h.service.DeleteTour(c.Request.Context(), actor(c), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListMyTours(c *gin.Context) {
	tours, err := h.service.ListToursByAgency(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tours")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tours": tours})
}

// actor builds the acting user from the auth middleware context values.
func actor(c *gin.Context) *domain.User {
	return &domain.User{
		ID:   c.GetInt64("user_id"),
		Role: domain.UserRole(c.GetString("role")),
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "TOUR_NOT_FOUND", "Tour not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
