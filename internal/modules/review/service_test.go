package review

import (
	"context"
	"testing"

	"tourbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	if rv != nil {
		rv.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockReviewRepository) GetByTourID(ctx context.Context, tourID int64) ([]domain.Review, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

type MockTourRepository struct {
	mock.Mock
}

func (m *MockTourRepository) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tour), args.Error(1)
}

func (m *MockTourRepository) UpdateRating(ctx context.Context, id int64, rating int) error {
	args := m.Called(ctx, id, rating)
	return args.Error(0)
}

func reviewsWithRatings(tourID int64, ratings ...int) []domain.Review {
	out := make([]domain.Review, 0, len(ratings))
	for i, r := range ratings {
		out = append(out, domain.Review{ID: int64(i + 1), TourID: tourID, Rating: r})
	}
	return out
}

func TestService_SubmitReview_Success(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockTours := new(MockTourRepository)

	mockTours.On("GetByID", mock.Anything, int64(10)).Return(&domain.Tour{ID: 10}, nil)
	mockReviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockReviews.On("GetByTourID", mock.Anything, int64(10)).
		Return(reviewsWithRatings(10, 4, 5, 5), nil)
	mockTours.On("UpdateRating", mock.Anything, int64(10), 47).Return(nil)

	service := NewService(mockReviews, mockTours)

	rv, err := service.SubmitReview(context.Background(), 42, CreateReviewRequest{
		TourID:  10,
		Rating:  5,
		Comment: "Stunning views all the way.",
	})

	assert.NoError(t, err)
	assert.NotNil(t, rv)
	assert.Equal(t, int64(42), rv.UserID)
	// mean(4,5,5)=4.666..., *10 rounds to 47
	mockTours.AssertCalled(t, "UpdateRating", mock.Anything, int64(10), 47)
}

func TestService_SubmitReview_RatingBounds(t *testing.T) {
	for _, rating := range []int{0, -1, 6, 100} {
		mockReviews := new(MockReviewRepository)
		mockTours := new(MockTourRepository)
		service := NewService(mockReviews, mockTours)

		rv, err := service.SubmitReview(context.Background(), 42, CreateReviewRequest{
			TourID:  10,
			Rating:  rating,
			Comment: "Does not matter here.",
		})

		assert.ErrorIs(t, err, ErrValidation)
		assert.Nil(t, rv)
		assert.Contains(t, err.Error(), "between 1 and 5")
		mockReviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestService_SubmitReview_TourNotFound(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockTours := new(MockTourRepository)

	mockTours.On("GetByID", mock.Anything, int64(10)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockReviews, mockTours)

	rv, err := service.SubmitReview(context.Background(), 42, CreateReviewRequest{
		TourID:  10,
		Rating:  5,
		Comment: "Never gets created.",
	})

	assert.ErrorIs(t, err, ErrTourNotFound)
	assert.Nil(t, rv)
	mockReviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_SubmitReview_TourDeletedDuringRecompute(t *testing.T) {
	// The review is already persisted when the aggregate write fails because
	// the tour vanished; the submission must still succeed.
	mockReviews := new(MockReviewRepository)
	mockTours := new(MockTourRepository)

	mockTours.On("GetByID", mock.Anything, int64(10)).Return(&domain.Tour{ID: 10}, nil)
	mockReviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockReviews.On("GetByTourID", mock.Anything, int64(10)).
		Return(reviewsWithRatings(10, 5), nil)
	mockTours.On("UpdateRating", mock.Anything, int64(10), 50).Return(gorm.ErrRecordNotFound)

	service := NewService(mockReviews, mockTours)

	rv, err := service.SubmitReview(context.Background(), 42, CreateReviewRequest{
		TourID:  10,
		Rating:  5,
		Comment: "Race against tour deletion.",
	})

	assert.NoError(t, err)
	assert.NotNil(t, rv)
}

func TestService_RecomputeTourRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    int
	}{
		{"no reviews resets to zero", nil, 0},
		{"single review", []int{4}, 40},
		{"mean rounds up", []int{4, 5, 5}, 47},
		{"mean rounds down", []int{4, 4, 5}, 43},
		{"even mean", []int{5, 3}, 40},
		{"half rounds away from zero", []int{4, 4, 4, 5}, 43},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReviews := new(MockReviewRepository)
			mockTours := new(MockTourRepository)

			mockReviews.On("GetByTourID", mock.Anything, int64(10)).
				Return(reviewsWithRatings(10, tt.ratings...), nil)
			mockTours.On("UpdateRating", mock.Anything, int64(10), tt.want).Return(nil)

			service := NewService(mockReviews, mockTours)

			err := service.RecomputeTourRating(context.Background(), 10)

			assert.NoError(t, err)
			mockTours.AssertCalled(t, "UpdateRating", mock.Anything, int64(10), tt.want)
		})
	}
}

func TestService_RecomputeTourRating_Idempotent(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockTours := new(MockTourRepository)

	mockReviews.On("GetByTourID", mock.Anything, int64(10)).
		Return(reviewsWithRatings(10, 4, 5, 5), nil)
	mockTours.On("UpdateRating", mock.Anything, int64(10), 47).Return(nil)

	service := NewService(mockReviews, mockTours)

	assert.NoError(t, service.RecomputeTourRating(context.Background(), 10))
	assert.NoError(t, service.RecomputeTourRating(context.Background(), 10))

	// Both calls must write the same value.
	mockTours.AssertNumberOfCalls(t, "UpdateRating", 2)
}

func TestService_ListReviewsForTour(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockTours := new(MockTourRepository)

	mockReviews.On("GetByTourID", mock.Anything, int64(10)).
		Return(reviewsWithRatings(10, 5, 3), nil)

	service := NewService(mockReviews, mockTours)

	got, err := service.ListReviewsForTour(context.Background(), 10)

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 5, got[0].Rating)
	assert.Equal(t, 3, got[1].Rating)
}
