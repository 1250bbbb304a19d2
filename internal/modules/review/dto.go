package review

// CreateReviewRequest is the boundary contract for review submission. The
// comment minimum length is enforced here by the binding layer; the service
// treats comment as opaque validated text and does not re-check it.
type CreateReviewRequest struct {
	TourID  int64  `json:"tour_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"required,min=10"`
}
