package repository

import (
	"context"
	"encoding/json"
	"time"

	"tourbook/internal/domain"

	"gorm.io/gorm"
)

type TourRepository struct {
	db *gorm.DB
}

func NewTourRepository(db *gorm.DB) *TourRepository {
	return &TourRepository{db: db}
}

type tourModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	AgencyID    *int64    `gorm:"column:agency_id"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description;type:text"`
	Location    string    `gorm:"column:location"`
	Duration    string    `gorm:"column:duration"`
	Price       int       `gorm:"column:price"`
	MaxPeople   int       `gorm:"column:max_people"`
	Rating      int       `gorm:"column:rating"`
	Category    string    `gorm:"column:category;index"`
	Tags        *string   `gorm:"column:tags;type:text"`
	IsHot       bool      `gorm:"column:is_hot"`
	Included    *string   `gorm:"column:included;type:text"`
	Excluded    *string   `gorm:"column:excluded;type:text"`
	Program     string    `gorm:"column:program;type:text"`
	Route       *string   `gorm:"column:route;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (tourModel) TableName() string { return "tours" }

func toDomainTour(m tourModel) *domain.Tour {
	t := &domain.Tour{
		ID:          m.ID,
		AgencyID:    m.AgencyID,
		Title:       m.Title,
		Description: m.Description,
		Location:    m.Location,
		Duration:    m.Duration,
		Price:       m.Price,
		MaxPeople:   m.MaxPeople,
		Rating:      m.Rating,
		Category:    m.Category,
		IsHot:       m.IsHot,
		Program:     m.Program,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	t.Tags = decodeStrings(m.Tags)
	t.Included = decodeStrings(m.Included)
	t.Excluded = decodeStrings(m.Excluded)
	if m.Route != nil && *m.Route != "" {
		_ = json.Unmarshal([]byte(*m.Route), &t.Route)
	}
	return t
}

func toTourModel(t *domain.Tour) tourModel {
	m := tourModel{
		ID:          t.ID,
		AgencyID:    t.AgencyID,
		Title:       t.Title,
		Description: t.Description,
		Location:    t.Location,
		Duration:    t.Duration,
		Price:       t.Price,
		MaxPeople:   t.MaxPeople,
		Rating:      t.Rating,
		Category:    t.Category,
		IsHot:       t.IsHot,
		Program:     t.Program,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	m.Tags = encodeStrings(t.Tags)
	m.Included = encodeStrings(t.Included)
	m.Excluded = encodeStrings(t.Excluded)
	if len(t.Route) > 0 {
		if b, err := json.Marshal(t.Route); err == nil {
			v := string(b)
			m.Route = &v
		}
	}
	return m
}

func decodeStrings(s *string) []string {
	if s == nil || *s == "" {
		return nil
	}
	var out []string
	_ = json.Unmarshal([]byte(*s), &out)
	return out
}

func encodeStrings(v []string) *string {
	if len(v) == 0 {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

func (r *TourRepository) Create(ctx context.Context, t *domain.Tour) error {
	m := toTourModel(t)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*t = *toDomainTour(m)
	return nil
}

func (r *TourRepository) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	var m tourModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTour(m), nil
}

// TourFilter narrows List results. Zero values mean "no filter".
type TourFilter struct {
	Category string
	HotOnly  bool
	AgencyID *int64
}

func (r *TourRepository) List(ctx context.Context, f TourFilter) ([]domain.Tour, error) {
	q := r.db.WithContext(ctx).Model(&tourModel{}).Order("id")
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.HotOnly {
		q = q.Where("is_hot = ?", true)
	}
	if f.AgencyID != nil {
		q = q.Where("agency_id = ?", *f.AgencyID)
	}

	var rows []tourModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Tour, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainTour(m))
	}
	return out, nil
}

func (r *TourRepository) Update(ctx context.Context, t *domain.Tour) error {
	m := toTourModel(t)
	tx := r.db.WithContext(ctx).Model(&tourModel{ID: t.ID}).Select("*").
		Omit("id", "created_at", "rating").Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateRating persists the derived aggregate rating only.
func (r *TourRepository) UpdateRating(ctx context.Context, id int64, rating int) error {
	tx := r.db.WithContext(ctx).Model(&tourModel{}).Where("id = ?", id).
		Update("rating", rating)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the tour together with its dependent bookings and reviews
// in one transaction, so no orphaned rows survive a listing removal.
func (r *TourRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tour_id = ?", id).Delete(&reviewModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tour_id = ?", id).Delete(&bookingModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&tourModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
