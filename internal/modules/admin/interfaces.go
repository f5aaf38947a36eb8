package admin

import (
	"context"

	"errorfree/internal/domain"
)

type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
}

// BookingStore is the slice of the booking repository the staff surface needs.
type BookingStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, sessionRef *string) (*domain.Booking, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Booking, error)
}

type tokenIssuer interface {
	GenerateToken(adminID int64, email string) (string, error)
}
