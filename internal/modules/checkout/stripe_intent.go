package checkout

import (
	"context"
	"fmt"
	"strconv"

	"errorfree/internal/domain"
	"errorfree/internal/pkg/currency"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// IntentGateway is the embedded-element strategy: a payment intent is created
// up front, the frontend renders the payment element with the client secret
// and confirms client-side. Completion is verified against the intent's
// terminal status, never assumed from the callback alone.
type IntentGateway struct {
	cfg    Config
	logger *zap.Logger
}

func NewIntentGateway(cfg Config, logger *zap.Logger) *IntentGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntentGateway{cfg: cfg, logger: logger}
}

func (g *IntentGateway) CreateSession(ctx context.Context, b *domain.Booking) (*Session, error) {
	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(currency.ToMinorUnits(b.ServicePrice)),
		Currency:     stripe.String(g.cfg.Currency),
		ReceiptEmail: stripe.String(b.CustomerEmail),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("booking_id", strconv.FormatInt(b.ID, 10))
	params.AddMetadata("service", b.ServiceName)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	g.logger.Info("payment intent created",
		zap.Int64("booking_id", b.ID),
		zap.String("intent_id", pi.ID),
	)
	return &Session{Reference: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (g *IntentGateway) Completed(ctx context.Context, ref string) (bool, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(ref, params)
	if err != nil {
		return false, fmt.Errorf("fetch payment intent: %w", err)
	}
	return pi.Status == stripe.PaymentIntentStatusSucceeded, nil
}
