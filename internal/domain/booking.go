package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a customer's request for a service visit. The store owns
// id/created_at/updated_at; only Status, SessionRef and UpdatedAt change
// after creation.
type Booking struct {
	ID             int64         `json:"id"`
	ServiceName    string        `json:"service_name"`
	ServicePrice   float64       `json:"service_price"`
	CustomerName   string        `json:"customer_name"`
	CustomerEmail  string        `json:"customer_email"`
	CustomerPhone  string        `json:"customer_phone"`
	PreferredDate  string        `json:"preferred_date"`
	PreferredTime  string        `json:"preferred_time"`
	Status         BookingStatus `json:"status"`
	SessionRef     string        `json:"session_ref,omitempty"`
	IdempotencyKey string        `json:"-"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
