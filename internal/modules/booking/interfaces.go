package booking

import (
	"context"

	"errorfree/internal/domain"
	"errorfree/internal/modules/checkout"
)

// BookingRepository is the persistence gateway over the bookings table.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, sessionRef *string) (*domain.Booking, error)
	GetBySessionRef(ctx context.Context, ref string) (*domain.Booking, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]domain.Booking, error)
}

// CheckoutGateway mints and verifies payment sessions.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, b *domain.Booking) (*checkout.Session, error)
	Completed(ctx context.Context, ref string) (bool, error)
}
