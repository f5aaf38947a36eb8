package booking

import (
	"context"
	"errors"
	"regexp"
	"time"

	"errorfree/internal/domain"
	"errorfree/internal/pkg/validator"
	"errorfree/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"modernc.org/sqlite"
)

// Same rule the booking form applies client-side.
var phoneRe = regexp.MustCompile(`^\+?[0-9\s\-()]{10,}$`)

const dateLayout = "2006-01-02"

type Service struct {
	bookings BookingRepository
	gateway  CheckoutGateway
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(bookings BookingRepository, gateway CheckoutGateway, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		bookings: bookings,
		gateway:  gateway,
		logger:   logger,
		now:      time.Now,
	}
}

// SubmitBooking validates the form, persists a pending booking and mints a
// payment session tagged with the booking id. Exactly one row and at most one
// provider call per successful invocation; validation failures have no side
// effects.
func (s *Service) SubmitBooking(ctx context.Context, req SubmitBookingRequest) (*SubmitBookingResult, error) {
	if fields := s.validateForm(req); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	b := &domain.Booking{
		ServiceName:    req.ServiceName,
		ServicePrice:   req.ServicePrice,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		PreferredDate:  req.PreferredDate,
		PreferredTime:  req.PreferredTime,
		Status:         domain.BookingPending,
		IdempotencyKey: req.IdempotencyKey,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSubmission
		}
		s.logger.Error("booking insert failed", zap.Error(err))
		return nil, &ExternalServiceError{Op: "persist booking", Err: err}
	}

	sess, err := s.gateway.CreateSession(ctx, b)
	if err != nil {
		// The pending row stays; the customer can retry from a fresh form.
		s.logger.Error("payment session creation failed",
			zap.Int64("booking_id", b.ID), zap.Error(err))
		return nil, &ExternalServiceError{Op: "create payment session", Err: err}
	}

	ref := sess.Reference
	updated, err := s.bookings.UpdateStatus(ctx, b.ID, domain.BookingPending, &ref)
	if err != nil {
		s.logger.Error("failed to attach session reference",
			zap.Int64("booking_id", b.ID), zap.String("session_ref", ref), zap.Error(err))
		return nil, &ExternalServiceError{Op: "persist session reference", Err: err}
	}

	return &SubmitBookingResult{
		Booking:      updated,
		SessionRef:   ref,
		RedirectURL:  sess.RedirectURL,
		ClientSecret: sess.ClientSecret,
	}, nil
}

// ConfirmFromCallback correlates a success callback to its booking and marks
// it confirmed. Idempotent: a repeated callback for a confirmed booking is a
// no-op success. If the status write fails after the payment already
// succeeded, the fetched booking is returned rather than failing the caller.
func (s *Service) ConfirmFromCallback(ctx context.Context, sessionRef string) (*domain.Booking, error) {
	b, err := s.lookupBySessionRef(ctx, sessionRef)
	if err != nil {
		return nil, err
	}

	switch b.Status {
	case domain.BookingConfirmed:
		return b, nil
	case domain.BookingCancelled:
		return nil, ErrInvalidStatusTransition
	}

	done, err := s.gateway.Completed(ctx, sessionRef)
	if err != nil {
		s.logger.Error("payment verification failed",
			zap.String("session_ref", sessionRef), zap.Error(err))
		return nil, &ExternalServiceError{Op: "verify payment", Err: err}
	}
	if !done {
		return nil, ErrPaymentIncomplete
	}

	updated, err := s.bookings.UpdateStatus(ctx, b.ID, domain.BookingConfirmed, nil)
	if err != nil {
		s.logger.Error("confirm status update failed, returning fetched booking",
			zap.Int64("booking_id", b.ID), zap.Error(err))
		b.Status = domain.BookingConfirmed
		return b, nil
	}
	return updated, nil
}

// CancelFromCallback marks a pending booking cancelled when the customer
// abandons checkout. Cancelled is terminal; confirmed bookings are not
// touchable from the public callback.
func (s *Service) CancelFromCallback(ctx context.Context, sessionRef string) (*domain.Booking, error) {
	b, err := s.lookupBySessionRef(ctx, sessionRef)
	if err != nil {
		return nil, err
	}

	switch b.Status {
	case domain.BookingCancelled:
		return b, nil
	case domain.BookingConfirmed:
		return nil, ErrInvalidStatusTransition
	}

	updated, err := s.bookings.UpdateStatus(ctx, b.ID, domain.BookingCancelled, nil)
	if err != nil {
		s.logger.Error("cancel status update failed",
			zap.Int64("booking_id", b.ID), zap.Error(err))
		return nil, &ExternalServiceError{Op: "persist cancellation", Err: err}
	}
	return updated, nil
}

func (s *Service) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	if email == "" {
		return nil, &ValidationError{Fields: map[string]string{"email": "Email is required"}}
	}

	rows, err := s.bookings.ListByCustomerEmail(ctx, email)
	if err != nil {
		return nil, &ExternalServiceError{Op: "list bookings", Err: err}
	}
	return rows, nil
}

// isUniqueViolation matches a unique-constraint error from either store:
// gorm's translator normalizes to ErrDuplicatedKey when it recognizes the
// driver, postgres otherwise surfaces pgconn code 23505, and the sqlite dev
// store modernc codes 2067 (unique) and 1555 (primary key).
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	var sqErr *sqlite.Error
	return errors.As(err, &sqErr) && (sqErr.Code() == 2067 || sqErr.Code() == 1555)
}

func (s *Service) lookupBySessionRef(ctx context.Context, sessionRef string) (*domain.Booking, error) {
	if sessionRef == "" {
		return nil, ErrNotFound
	}

	b, err := s.bookings.GetBySessionRef(ctx, sessionRef)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrIntegrity):
			s.logger.Error("session reference matches multiple bookings",
				zap.String("session_ref", sessionRef))
			return nil, ErrIntegrity
		default:
			return nil, &ExternalServiceError{Op: "load booking", Err: err}
		}
	}
	return b, nil
}

func (s *Service) validateForm(req SubmitBookingRequest) map[string]string {
	errs := make(map[string]string)

	for field, tag := range validator.Validate(req) {
		switch field {
		case "service_name", "service_price":
			errs[field] = "Service selection is required"
		case "customer_name":
			errs[field] = "Name is required"
		case "customer_email":
			if tag == "required" {
				errs[field] = "Email is required"
			} else {
				errs[field] = "Please enter a valid email address"
			}
		case "customer_phone":
			errs[field] = "Phone number is required"
		case "preferred_date":
			errs[field] = "Preferred date is required"
		case "preferred_time":
			errs[field] = "Preferred time is required"
		default:
			errs[field] = "Invalid value"
		}
	}

	if _, bad := errs["customer_phone"]; !bad && !phoneRe.MatchString(req.CustomerPhone) {
		errs["customer_phone"] = "Please enter a valid phone number"
	}

	if _, bad := errs["preferred_date"]; !bad {
		day, err := time.Parse(dateLayout, req.PreferredDate)
		if err != nil {
			errs["preferred_date"] = "Please enter a valid date"
		} else {
			now := s.now()
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			if day.Before(today) {
				errs["preferred_date"] = "Preferred date cannot be in the past"
			}
		}
	}

	return errs
}
