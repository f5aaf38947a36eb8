package admin

import (
	"context"
	"errors"

	"errorfree/internal/domain"
	"errorfree/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	admins   AdminRepository
	bookings BookingStore
	jwt      tokenIssuer
	logger   *zap.Logger
}

func NewService(admins AdminRepository, bookings BookingStore, jwt tokenIssuer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{admins: admins, bookings: bookings, jwt: jwt, logger: logger}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.admins.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(u.ID, u.Email)
	if err != nil {
		return nil, err
	}

	u.PasswordHash = ""
	s.logger.Info("admin logged in", zap.String("email", u.Email))
	return &LoginResponse{Token: token, Admin: u}, nil
}

func (s *Service) ListBookings(ctx context.Context, limit int) ([]domain.Booking, error) {
	return s.bookings.ListRecent(ctx, limit)
}

// OverrideStatus lets staff resolve a booking manually. The same lifecycle
// rules apply as on the callback path: pending is the only mutable state.
func (s *Service) OverrideStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) (*domain.Booking, error) {
	switch status {
	case domain.BookingConfirmed, domain.BookingCancelled:
	default:
		return nil, ErrInvalidStatusTransition
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.Status == status {
		return b, nil
	}
	if b.Status != domain.BookingPending {
		return nil, ErrInvalidStatusTransition
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, status, nil)
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking status overridden",
		zap.Int64("booking_id", bookingID),
		zap.String("status", string(status)),
	)
	return updated, nil
}
