package checkout

import (
	"context"
	"fmt"

	"errorfree/internal/config"
	"errorfree/internal/domain"

	"go.uber.org/zap"
)

// Session is the provider-side payment session minted for a booking.
// Reference is the correlation key stored on the booking; exactly one of
// RedirectURL (hosted checkout) or ClientSecret (embedded element) is set.
type Session struct {
	Reference    string `json:"reference"`
	RedirectURL  string `json:"redirect_url,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
}

// Gateway is the single payment integration point. A deployment runs exactly
// one implementation; both confirmation paths funnel through the booking
// controller so status writes have one arbitration point.
type Gateway interface {
	// CreateSession mints a payment session for a persisted pending booking.
	CreateSession(ctx context.Context, b *domain.Booking) (*Session, error)
	// Completed reports whether the session identified by ref has reached a
	// terminal paid state.
	Completed(ctx context.Context, ref string) (bool, error)
}

// Config is the slice of deployment configuration the gateways need,
// injected at construction.
type Config struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

// NewGateway selects the deployment's strategy from PAYMENT_MODE.
func NewGateway(cfg *config.Config, logger *zap.Logger) (Gateway, error) {
	gcfg := Config{
		Currency:   cfg.Currency,
		SuccessURL: cfg.CheckoutSuccessURL,
		CancelURL:  cfg.CheckoutCancelURL,
	}

	switch cfg.PaymentMode {
	case config.PaymentModeCheckout:
		return NewSessionGateway(gcfg, logger), nil
	case config.PaymentModeIntent:
		return NewIntentGateway(gcfg, logger), nil
	case config.PaymentModeDemo:
		return NewDemoGateway(gcfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown payment mode %q", cfg.PaymentMode)
	}
}

// successCallbackURL appends the session-id template the provider substitutes
// on redirect.
func successCallbackURL(base string) string {
	return base + "?session_id={CHECKOUT_SESSION_ID}"
}
