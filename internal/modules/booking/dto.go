package booking

import "errorfree/internal/domain"

type SubmitBookingRequest struct {
	ServiceName   string  `json:"service_name" validate:"required"`
	ServicePrice  float64 `json:"service_price" validate:"required,gt=0"`
	CustomerName  string  `json:"customer_name" validate:"required"`
	CustomerEmail string  `json:"customer_email" validate:"required,email"`
	CustomerPhone string  `json:"customer_phone" validate:"required"`
	PreferredDate string  `json:"preferred_date" validate:"required"`
	PreferredTime string  `json:"preferred_time" validate:"required"`
	// Generated once per form render; the unique index on it is the
	// server-side half of the double-submit guard.
	IdempotencyKey string `json:"idempotency_key"`
}

type SubmitBookingResult struct {
	Booking      *domain.Booking `json:"booking"`
	SessionRef   string          `json:"session_ref"`
	RedirectURL  string          `json:"redirect_url,omitempty"`
	ClientSecret string          `json:"client_secret,omitempty"`
}
