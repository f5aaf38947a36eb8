package checkout

import (
	"context"
	"fmt"
	"strconv"

	"errorfree/internal/domain"
	"errorfree/internal/pkg/currency"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// SessionGateway is the hosted-checkout strategy: Stripe hosts the entire
// payment UI and redirects the browser back to the success or cancel URL.
// Completion is signalled by the success callback carrying the session id.
type SessionGateway struct {
	cfg    Config
	logger *zap.Logger
}

func NewSessionGateway(cfg Config, logger *zap.Logger) *SessionGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionGateway{cfg: cfg, logger: logger}
}

func (g *SessionGateway) CreateSession(ctx context.Context, b *domain.Booking) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(b.CustomerEmail),
		SuccessURL:    stripe.String(successCallbackURL(g.cfg.SuccessURL)),
		CancelURL:     stripe.String(g.cfg.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.cfg.Currency),
					UnitAmount: stripe.Int64(currency.ToMinorUnits(b.ServicePrice)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(b.ServiceName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("booking_id", strconv.FormatInt(b.ID, 10))

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	g.logger.Info("checkout session created",
		zap.Int64("booking_id", b.ID),
		zap.String("session_id", s.ID),
	)
	return &Session{Reference: s.ID, RedirectURL: s.URL}, nil
}

// Completed trusts the success-URL callback: for the hosted flow the provider
// only redirects there after payment, and the session id in the query string
// is the signal.
func (g *SessionGateway) Completed(ctx context.Context, ref string) (bool, error) {
	return true, nil
}
