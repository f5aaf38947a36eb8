package repository

import (
	"context"
	"errors"
	"time"

	"errorfree/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	ServiceName    string    `gorm:"column:service_name"`
	ServicePrice   float64   `gorm:"column:service_price"`
	CustomerName   string    `gorm:"column:customer_name"`
	CustomerEmail  string    `gorm:"column:customer_email;index"`
	CustomerPhone  string    `gorm:"column:customer_phone"`
	PreferredDate  string    `gorm:"column:preferred_date"`
	PreferredTime  string    `gorm:"column:preferred_time"`
	Status         string    `gorm:"column:status"`
	SessionRef     *string   `gorm:"column:session_ref;uniqueIndex"`
	IdempotencyKey *string   `gorm:"column:idempotency_key;uniqueIndex"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var sessionRef, idemKey string
	if m.SessionRef != nil {
		sessionRef = *m.SessionRef
	}
	if m.IdempotencyKey != nil {
		idemKey = *m.IdempotencyKey
	}

	return &domain.Booking{
		ID:             m.ID,
		ServiceName:    m.ServiceName,
		ServicePrice:   m.ServicePrice,
		CustomerName:   m.CustomerName,
		CustomerEmail:  m.CustomerEmail,
		CustomerPhone:  m.CustomerPhone,
		PreferredDate:  m.PreferredDate,
		PreferredTime:  m.PreferredTime,
		Status:         domain.BookingStatus(m.Status),
		SessionRef:     sessionRef,
		IdempotencyKey: idemKey,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var sessionRef, idemKey *string
	if b.SessionRef != "" {
		v := b.SessionRef
		sessionRef = &v
	}
	if b.IdempotencyKey != "" {
		v := b.IdempotencyKey
		idemKey = &v
	}

	return bookingModel{
		ID:             b.ID,
		ServiceName:    b.ServiceName,
		ServicePrice:   b.ServicePrice,
		CustomerName:   b.CustomerName,
		CustomerEmail:  b.CustomerEmail,
		CustomerPhone:  b.CustomerPhone,
		PreferredDate:  b.PreferredDate,
		PreferredTime:  b.PreferredTime,
		Status:         string(b.Status),
		SessionRef:     sessionRef,
		IdempotencyKey: idemKey,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
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
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// UpdateStatus applies a partial update: status, optionally the session
// reference, and always a fresh updated_at. Returns the updated row.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, sessionRef *string) (*domain.Booking, error) {
	updates := map[string]any{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}
	if sessionRef != nil {
		updates["session_ref"] = *sessionRef
	}

	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// GetBySessionRef is the confirmation correlation lookup. Zero rows is a
// NotFound; more than one row means the session reference is no longer a
// unique correlation key and the caller must not pick one arbitrarily.
func (r *BookingRepository) GetBySessionRef(ctx context.Context, ref string) (*domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).Where("session_ref = ?", ref).Limit(2).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	switch len(rows) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return toDomainBooking(rows[0]), nil
	default:
		return nil, ErrIntegrity
	}
}

func (r *BookingRepository) ListByCustomerEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("customer_email = ?", email).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) ListRecent(ctx context.Context, limit int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rows []bookingModel
	tx := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
