package repository

import (
	"context"
	"time"

	"tourbook/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	TourID      int64     `gorm:"column:tour_id;index"`
	UserID      *int64    `gorm:"column:user_id"`
	FirstName   string    `gorm:"column:first_name"`
	LastName    string    `gorm:"column:last_name"`
	Email       string    `gorm:"column:email"`
	Phone       string    `gorm:"column:phone"`
	PeopleCount int       `gorm:"column:people_count"`
	Notes       *string   `gorm:"column:notes;type:text"`
	Status      string    `gorm:"column:status"`
	TotalPrice  int       `gorm:"column:total_price"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Booking{
		ID:          m.ID,
		TourID:      m.TourID,
		UserID:      m.UserID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		Phone:       m.Phone,
		PeopleCount: m.PeopleCount,
		Notes:       notes,
		Status:      domain.BookingStatus(m.Status),
		TotalPrice:  m.TotalPrice,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var notes *string
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}

	return bookingModel{
		ID:          b.ID,
		TourID:      b.TourID,
		UserID:      b.UserID,
		FirstName:   b.FirstName,
		LastName:    b.LastName,
		Email:       b.Email,
		Phone:       b.Phone,
		PeopleCount: b.PeopleCount,
		Notes:       notes,
		Status:      string(b.Status),
		TotalPrice:  b.TotalPrice,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetAll(ctx context.Context) ([]domain.Booking, error) {
	return r.list(r.db.WithContext(ctx))
}

func (r *BookingRepository) GetByTourID(ctx context.Context, tourID int64) ([]domain.Booking, error) {
	return r.list(r.db.WithContext(ctx).Where("tour_id = ?", tourID))
}

func (r *BookingRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return r.list(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *BookingRepository) list(q *gorm.DB) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// UpdateStatus persists the new status only; no other field is touched.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).
		Update("status", string(status))
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}
