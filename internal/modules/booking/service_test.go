package booking

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"errorfree/internal/database"
	"errorfree/internal/domain"
	"errorfree/internal/modules/checkout"
	"errorfree/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
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
	if b != nil && args.Error(0) == nil {
		b.ID = 101 // simulate DB insert
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

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, sessionRef *string) (*domain.Booking, error) {
	args := m.Called(ctx, id, status, sessionRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetBySessionRef(ctx context.Context, ref string) (*domain.Booking, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByCustomerEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockCheckoutGateway struct {
	mock.Mock
}

func (m *MockCheckoutGateway) CreateSession(ctx context.Context, b *domain.Booking) (*checkout.Session, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Session), args.Error(1)
}

func (m *MockCheckoutGateway) Completed(ctx context.Context, ref string) (bool, error) {
	args := m.Called(ctx, ref)
	return args.Bool(0), args.Error(1)
}

func validRequest() SubmitBookingRequest {
	tomorrow := time.Now().Add(24 * time.Hour).Format("2006-01-02")
	return SubmitBookingRequest{
		ServiceName:    "Boiler Repair",
		ServicePrice:   89.00,
		CustomerName:   "Jane Doe",
		CustomerEmail:  "jane@x.com",
		CustomerPhone:  "07700123456",
		PreferredDate:  tomorrow,
		PreferredTime:  "10:00",
		IdempotencyKey: "form-key-1",
	}
}

func TestSubmitBooking_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockGateway := new(MockCheckoutGateway)

	var created *domain.Booking
	mockBookings.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*domain.Booking)
	}).Return(nil)

	mockGateway.On("CreateSession", mock.Anything, mock.Anything).Return(&checkout.Session{
		Reference:   "sess_abc",
		RedirectURL: "https://checkout.example.com/pay/sess_abc",
	}, nil)

	mockBookings.On("UpdateStatus", mock.Anything, int64(101), domain.BookingPending, mock.Anything).
		Return(&domain.Booking{
			ID:           101,
			ServiceName:  "Boiler Repair",
			ServicePrice: 89.00,
			Status:       domain.BookingPending,
			SessionRef:   "sess_abc",
		}, nil)

	service := NewService(mockBookings, mockGateway, nil)

	result, err := service.SubmitBooking(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, domain.BookingPending, result.Booking.Status)
	assert.Equal(t, 89.00, result.Booking.ServicePrice)
	assert.Equal(t, "sess_abc", result.SessionRef)
	assert.NotEmpty(t, result.RedirectURL)

	// exactly one row created, at most one session request
	mockBookings.AssertNumberOfCalls(t, "Create", 1)
	mockGateway.AssertNumberOfCalls(t, "CreateSession", 1)
	assert.Equal(t, domain.BookingPending, created.Status)
	assert.Equal(t, "form-key-1", created.IdempotencyKey)
}

func TestSubmitBooking_ValidationErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SubmitBookingRequest)
		field  string
	}{
		{"missing name", func(r *SubmitBookingRequest) { r.CustomerName = "" }, "customer_name"},
		{"missing email", func(r *SubmitBookingRequest) { r.CustomerEmail = "" }, "customer_email"},
		{"malformed email", func(r *SubmitBookingRequest) { r.CustomerEmail = "not-an-email" }, "customer_email"},
		{"malformed phone", func(r *SubmitBookingRequest) { r.CustomerPhone = "123" }, "customer_phone"},
		{"past date", func(r *SubmitBookingRequest) { r.PreferredDate = "2020-01-01" }, "preferred_date"},
		{"unparseable date", func(r *SubmitBookingRequest) { r.PreferredDate = "31/12/2026" }, "preferred_date"},
		{"missing time", func(r *SubmitBookingRequest) { r.PreferredTime = "" }, "preferred_time"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockBookings := new(MockBookingRepository)
			mockGateway := new(MockCheckoutGateway)
			service := NewService(mockBookings, mockGateway, nil)

			req := validRequest()
			tc.mutate(&req)

			_, err := service.SubmitBooking(context.Background(), req)

			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
			assert.Len(t, ve.Fields, 1)
			assert.Contains(t, ve.Fields, tc.field)

			// no side effects on validation failure
			mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			mockGateway.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitBooking_OneErrorPerInvalidField(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockGateway := new(MockCheckoutGateway)
	service := NewService(mockBookings, mockGateway, nil)

	req := validRequest()
	req.CustomerName = ""
	req.CustomerEmail = "nope"
	req.CustomerPhone = "x"
	req.PreferredTime = ""

	_, err := service.SubmitBooking(context.Background(), req)

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 4)
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitBooking_DuplicateSubmission(t *testing.T) {
	cases := []struct {
		name      string
		insertErr error
	}{
		{"postgres unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "idx_bookings_idempotency_key"}},
		{"translated duplicate key", gorm.ErrDuplicatedKey},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockBookings := new(MockBookingRepository)
			mockGateway := new(MockCheckoutGateway)

			mockBookings.On("Create", mock.Anything, mock.Anything).Return(tc.insertErr)

			service := NewService(mockBookings, mockGateway, nil)

			_, err := service.SubmitBooking(context.Background(), validRequest())

			assert.ErrorIs(t, err, ErrDuplicateSubmission)
			mockGateway.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitBooking_DuplicateSubmissionOnDevStore(t *testing.T) {
	db, err := database.Connect(filepath.Join(t.TempDir(), "bookings.db"))
	assert.NoError(t, err)
	assert.NoError(t, repository.AutoMigrate(db))

	mockGateway := new(MockCheckoutGateway)
	mockGateway.On("CreateSession", mock.Anything, mock.Anything).Return(&checkout.Session{
		Reference:   "sess_dev",
		RedirectURL: "https://checkout.example.com/pay/sess_dev",
	}, nil)

	service := NewService(repository.NewBookingRepository(db), mockGateway, nil)

	_, err = service.SubmitBooking(context.Background(), validRequest())
	assert.NoError(t, err)

	// same form, same idempotency key: the unique index stops the re-insert
	_, err = service.SubmitBooking(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
}

func TestSubmitBooking_PersistenceFailure(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockGateway := new(MockCheckoutGateway)

	mockBookings.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	service := NewService(mockBookings, mockGateway, nil)

	_, err := service.SubmitBooking(context.Background(), validRequest())

	var ese *ExternalServiceError
	assert.ErrorAs(t, err, &ese)
	assert.Equal(t, "persist booking", ese.Op)
	mockGateway.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestSubmitBooking_GatewayFailure(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockGateway := new(MockCheckoutGateway)

	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockGateway.On("CreateSession", mock.Anything, mock.Anything).
		Return(nil, errors.New("stripe: api unavailable"))

	service := NewService(mockBookings, mockGateway, nil)

	_, err := service.SubmitBooking(context.Background(), validRequest())

	var ese *ExternalServiceError
	assert.ErrorAs(t, err, &ese)
	assert.Equal(t, "create payment session", ese.Op)
	// the pending row stays, no status write happens
	mockBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmFromCallback_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockGateway := new(MockCheckoutGateway)

	createdAt := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	mockBookings.On("GetBySessionRef", mock.Anything, "sess_123").Return(&domain.Booking{
		ID:         7,
		Status:     domain.BookingPending,
		SessionRef: "sess_123",
		UpdatedAt:  createdAt,
	}, nil)
	mockGateway.On("Completed", mock.Anything, "sess_123").Return(true, nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(7), domain.BookingConfirmed, (*string)(nil)).
		Return(&domain.Booking{
			ID:         7,
			Status:     domain.BookingConfirmed,
			SessionRef: "sess_123",
			UpdatedAt:  createdAt.Add(5 * time.Minute),
		}, nil)

	service := NewService(mockBookings, mockGateway, nil)

	b, err := service.ConfirmFromCallback(context.Background(), "sess_123")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, "sess_123", b.SessionRef)
	assert.True(t, b.UpdatedAt.After(createdAt))
	mockBookings.AssertExpectations(t)
}

func TestConfirmFromCallback_Idempotent(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockGateway := new(MockCheckoutGateway)

	mockBookings.On("GetBySessionRef", mock.Anything, "sess_123").Return(&domain.Booking{
		ID:         7,
		Status:     domain.BookingConfirmed,
		SessionRef: "sess_123",
	}, nil)

	service := NewService(mockBookings, mockGateway, nil)

	for i := 0; i < 2; i++ {
		b, err := service.ConfirmFromCallback(context.Background(), "sess_123")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingConfirmed, b.Status)
	}

	mockBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockGateway.AssertNotCalled(t, "Completed", mock.Anything, mock.Anything)
}

func TestConfirmFromCallback_NotFound(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockGateway := new(MockCheckoutGateway)

	mockBookings.On("GetBySessionRef", mock.Anything, "sess_unknown").
		Return(nil, repository.ErrNotFound)

	service := NewService(mockBookings, mockGateway, nil)

	_, err := service.ConfirmFromCallback(context.Background(), "sess_unknown")

	assert.ErrorIs(t, err, ErrNotFound)
	mockBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmFromCallback_AmbiguousReference(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockGateway := new(MockCheckoutGateway)

	mockBookings.On("GetBySessionRef", mock.Anything, "sess_dup").
		Return(nil, repository.ErrIntegrity)

	service := NewService(mockBookings, mockGateway, nil)

	_, err := service.ConfirmFromCallback(context.Background(), "sess_dup")

	assert.ErrorIs(t, err, ErrIntegrity)
	mockBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmFromCallback_UpdateFailureReturnsFetched(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockGateway := new(MockCheckoutGateway)

	mockBookings.On("GetBySessionRef", mock.Anything, "sess_123").Return(&domain.Booking{
		ID:         7,
		Status:     domain.BookingPending,
		SessionRef: "sess_123",
	}, nil)
	mockGateway.On("Completed", mock.Anything, "sess_123").Return(true, nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(7), domain.BookingConfirmed, (*string)(nil)).
		Return(nil, errors.New("write timeout"))

	service := NewService(mockBookings, mockGateway, nil)

	b, err := service.ConfirmFromCallback(context.Background(), "sess_123")

	// best-effort degradation: payment succeeded, so the caller still gets
	// the booking back
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, "sess_123", b.SessionRef)
}

func TestConfirmFromCallback_PaymentIncomplete(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockGateway := new(MockCheckoutGateway)

	mockBookings.On("GetBySessionRef", mock.Anything, "pi_123").Return(&domain.Booking{
		ID:         7,
		Status:     domain.BookingPending,
		SessionRef: "pi_123",
	}, nil)
	mockGateway.On("Completed", mock.Anything, "pi_123").Return(false, nil)

	service := NewService(mockBookings, mockGateway, nil)

	_, err := service.ConfirmFromCallback(context.Background(), "pi_123")

	assert.ErrorIs(t, err, ErrPaymentIncomplete)
	mockBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmFromCallback_CancelledIsTerminal(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockGateway := new(MockCheckoutGateway)

	mockBookings.On("GetBySessionRef", mock.Anything, "sess_123").Return(&domain.Booking{
		ID:         7,
		Status:     domain.BookingCancelled,
		SessionRef: "sess_123",
	}, nil)

	service := NewService(mockBookings, mockGateway, nil)

	_, err := service.ConfirmFromCallback(context.Background(), "sess_123")

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	mockBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelFromCallback(t *testing.T) {
	t.Run("pending becomes cancelled", func(t *testing.T) {
		mockBookings := new(MockBookingRepository)
		mockGateway := new(MockCheckoutGateway)

		mockBookings.On("GetBySessionRef", mock.Anything, "sess_123").Return(&domain.Booking{
			ID:         7,
			Status:     domain.BookingPending,
			SessionRef: "sess_123",
		}, nil)
		mockBookings.On("UpdateStatus", mock.Anything, int64(7), domain.BookingCancelled, (*string)(nil)).
			Return(&domain.Booking{ID: 7, Status: domain.BookingCancelled, SessionRef: "sess_123"}, nil)

		service := NewService(mockBookings, mockGateway, nil)

		b, err := service.CancelFromCallback(context.Background(), "sess_123")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingCancelled, b.Status)
	})

	t.Run("already cancelled is a no-op", func(t *testing.T) {
		mockBookings := new(MockBookingRepository)
		mockGateway := new(MockCheckoutGateway)

		mockBookings.On("GetBySessionRef", mock.Anything, "sess_123").Return(&domain.Booking{
			ID:     7,
			Status: domain.BookingCancelled,
		}, nil)

		service := NewService(mockBookings, mockGateway, nil)

		b, err := service.CancelFromCallback(context.Background(), "sess_123")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingCancelled, b.Status)
		mockBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("confirmed cannot be cancelled", func(t *testing.T) {
		mockBookings := new(MockBookingRepository)
		mockGateway := new(MockCheckoutGateway)

		mockBookings.On("GetBySessionRef", mock.Anything, "sess_123").Return(&domain.Booking{
			ID:     7,
			Status: domain.BookingConfirmed,
		}, nil)

		service := NewService(mockBookings, mockGateway, nil)

		_, err := service.CancelFromCallback(context.Background(), "sess_123")
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})
}

func TestListByEmail(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockGateway := new(MockCheckoutGateway)

	rows := []domain.Booking{
		{ID: 2, CustomerEmail: "jane@x.com", CreatedAt: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)},
		{ID: 1, CustomerEmail: "jane@x.com", CreatedAt: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
	}
	mockBookings.On("ListByCustomerEmail", mock.Anything, "jane@x.com").Return(rows, nil)

	service := NewService(mockBookings, mockGateway, nil)

	got, err := service.ListByEmail(context.Background(), "jane@x.com")
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)

	_, err = service.ListByEmail(context.Background(), "")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	mockBookings.AssertNumberOfCalls(t, "ListByCustomerEmail", 1)
}
