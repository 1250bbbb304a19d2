package booking

import (
	"context"
	"testing"

	"tourbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetAll(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByTourID(ctx context.Context, tourID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
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

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		TourID:      10,
		FirstName:   "Alice",
		LastName:    "Morgan",
		Email:       "alice@example.com",
		Phone:       "+7 777 123 4567",
		PeopleCount: 1,
	}
}

func TestService_CreateBooking_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockTours := new(MockTourRepository)

	mockTours.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Tour{ID: 10, Price: 15000, MaxPeople: 8}, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockBookings, mockTours)

	userID := int64(42)
	b, err := service.CreateBooking(context.Background(), &userID, validRequest())

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, 1875, b.TotalPrice) // round(15000 * 1 / 8)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, int64(42), *b.UserID)
	mockBookings.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateBooking_GuestHasNoUser(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockTours := new(MockTourRepository)

	mockTours.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Tour{ID: 10, Price: 20000, MaxPeople: 4}, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockBookings, mockTours)

	req := validRequest()
	req.PeopleCount = 2
	b, err := service.CreateBooking(context.Background(), nil, req)

	assert.NoError(t, err)
	assert.Nil(t, b.UserID)
	assert.Equal(t, 10000, b.TotalPrice) // round(20000 * 2 / 4)
}

func TestService_CreateBooking_PriceRounding(t *testing.T) {
	tests := []struct {
		name        string
		price       int
		maxPeople   int
		peopleCount int
		want        int
	}{
		{"exact division", 15000, 8, 1, 1875},
		{"rounds down", 10000, 3, 1, 3333},
		{"rounds up", 20000, 3, 1, 6667},
		{"half rounds away from zero", 25, 10, 5, 13},
		{"full capacity pays full price", 15000, 8, 8, 15000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBookings := new(MockBookingRepository)
			mockTours := new(MockTourRepository)

			mockTours.On("GetByID", mock.Anything, int64(10)).
				Return(&domain.Tour{ID: 10, Price: tt.price, MaxPeople: tt.maxPeople}, nil)
			mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)

			service := NewService(mockBookings, mockTours)

			req := validRequest()
			req.PeopleCount = tt.peopleCount
			b, err := service.CreateBooking(context.Background(), nil, req)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, b.TotalPrice)
		})
	}
}

func TestService_CreateBooking_PeopleCountBounds(t *testing.T) {
	tests := []struct {
		name        string
		peopleCount int
	}{
		{"zero", 0},
		{"negative", -1},
		{"over capacity", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBookings := new(MockBookingRepository)
			mockTours := new(MockTourRepository)

			mockTours.On("GetByID", mock.Anything, int64(10)).
				Return(&domain.Tour{ID: 10, Price: 15000, MaxPeople: 8}, nil)

			service := NewService(mockBookings, mockTours)

			req := validRequest()
			req.PeopleCount = tt.peopleCount
			b, err := service.CreateBooking(context.Background(), nil, req)

			assert.ErrorIs(t, err, ErrValidation)
			assert.Nil(t, b)
			assert.Contains(t, err.Error(), "people_count")
			mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_CreateBooking_MissingContactFields(t *testing.T) {
	mutations := map[string]func(*CreateBookingRequest){
		"first_name": func(r *CreateBookingRequest) { r.FirstName = "   " },
		"last_name":  func(r *CreateBookingRequest) { r.LastName = "" },
		"email":      func(r *CreateBookingRequest) { r.Email = " " },
		"phone":      func(r *CreateBookingRequest) { r.Phone = "" },
	}

	for field, mutate := range mutations {
		t.Run(field, func(t *testing.T) {
			mockBookings := new(MockBookingRepository)
			mockTours := new(MockTourRepository)
			service := NewService(mockBookings, mockTours)

			req := validRequest()
			mutate(&req)
			b, err := service.CreateBooking(context.Background(), nil, req)

			assert.ErrorIs(t, err, ErrValidation)
			assert.Nil(t, b)
			assert.Contains(t, err.Error(), field)
			mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_CreateBooking_TourNotFound(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockTours := new(MockTourRepository)

	mockTours.On("GetByID", mock.Anything, int64(10)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockBookings, mockTours)

	b, err := service.CreateBooking(context.Background(), nil, validRequest())

	assert.ErrorIs(t, err, ErrTourNotFound)
	assert.Nil(t, b)
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_ListBookings(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockTours := new(MockTourRepository)

	all := []domain.Booking{{ID: 1}, {ID: 2}, {ID: 3}}
	byTour := []domain.Booking{{ID: 2, TourID: 7}}
	mockBookings.On("GetAll", mock.Anything).Return(all, nil)
	mockBookings.On("GetByTourID", mock.Anything, int64(7)).Return(byTour, nil)

	service := NewService(mockBookings, mockTours)

	got, err := service.ListBookings(context.Background(), nil)
	assert.NoError(t, err)
	assert.Len(t, got, 3)

	tourID := int64(7)
	got, err = service.ListBookings(context.Background(), &tourID)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].TourID)
}

func TestService_ListBookingsForUser(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockTours := new(MockTourRepository)

	userID := int64(42)
	mine := []domain.Booking{{ID: 2, UserID: &userID}}
	mockBookings.On("GetByUserID", mock.Anything, userID).Return(mine, nil)

	service := NewService(mockBookings, mockTours)

	got, err := service.ListBookingsForUser(context.Background(), userID)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, userID, *got[0].UserID)
}

func TestService_GetBooking_NotFound(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockTours := new(MockTourRepository)

	mockBookings.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockBookings, mockTours)

	b, err := service.GetBooking(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, b)
}

func TestService_UpdateBookingStatus_InvalidStatus(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockTours := new(MockTourRepository)
	service := NewService(mockBookings, mockTours)

	b, err := service.UpdateBookingStatus(context.Background(), 1, 1, domain.RoleAgency, "completed")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, b)
	assert.Contains(t, err.Error(), "pending, confirmed, cancelled")
	mockBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateBookingStatus_NotFound(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockTours := new(MockTourRepository)

	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockBookings, mockTours)

	b, err := service.UpdateBookingStatus(context.Background(), 1, 1, domain.RoleAgency, "confirmed")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, b)
}

func TestService_UpdateBookingStatus_OwningAgency(t *testing.T) {
	agencyID := int64(5)

	mockBookings := new(MockBookingRepository)
	mockTours := new(MockTourRepository)

	stored := &domain.Booking{ID: 1, TourID: 10, Status: domain.BookingPending}
	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(stored, nil)
	mockTours.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Tour{ID: 10, AgencyID: &agencyID}, nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(1), domain.BookingConfirmed).
		Return(&domain.Booking{ID: 1, TourID: 10, Status: domain.BookingConfirmed}, nil)

	service := NewService(mockBookings, mockTours)

	b, err := service.UpdateBookingStatus(context.Background(), 1, agencyID, domain.RoleAgency, "confirmed")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
}

func TestService_UpdateBookingStatus_PermissiveTransitions(t *testing.T) {
	// Any state may reach any other, including itself.
	transitions := []struct {
		from domain.BookingStatus
		to   string
	}{
		{domain.BookingCancelled, "pending"},
		{domain.BookingConfirmed, "confirmed"},
		{domain.BookingConfirmed, "cancelled"},
	}

	for _, tr := range transitions {
		t.Run(string(tr.from)+"_to_"+tr.to, func(t *testing.T) {
			mockBookings := new(MockBookingRepository)
			mockTours := new(MockTourRepository)

			mockBookings.On("GetByID", mock.Anything, int64(1)).
				Return(&domain.Booking{ID: 1, TourID: 10, Status: tr.from}, nil)
			mockBookings.On("UpdateStatus", mock.Anything, int64(1), domain.BookingStatus(tr.to)).
				Return(&domain.Booking{ID: 1, TourID: 10, Status: domain.BookingStatus(tr.to)}, nil)

			service := NewService(mockBookings, mockTours)

			b, err := service.UpdateBookingStatus(context.Background(), 1, 0, domain.RoleAdmin, tr.to)

			assert.NoError(t, err)
			assert.Equal(t, domain.BookingStatus(tr.to), b.Status)
		})
	}
}

func TestService_UpdateBookingStatus_Forbidden(t *testing.T) {
	owner := int64(5)

	tests := []struct {
		name  string
		actor int64
		role  domain.UserRole
	}{
		{"traveler", 5, domain.RoleTraveler},
		{"other agency", 6, domain.RoleAgency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBookings := new(MockBookingRepository)
			mockTours := new(MockTourRepository)

			mockBookings.On("GetByID", mock.Anything, int64(1)).
				Return(&domain.Booking{ID: 1, TourID: 10, Status: domain.BookingPending}, nil)
			mockTours.On("GetByID", mock.Anything, int64(10)).
				Return(&domain.Tour{ID: 10, AgencyID: &owner}, nil)

			service := NewService(mockBookings, mockTours)

			b, err := service.UpdateBookingStatus(context.Background(), 1, tt.actor, tt.role, "confirmed")

			assert.ErrorIs(t, err, ErrForbidden)
			assert.Nil(t, b)
			mockBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
