package checkout

import (
	"context"
	"net/url"

	"errorfree/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DemoGateway fabricates payment sessions without touching the provider.
// It exists only for local development behind PAYMENT_MODE=demo; the real
// gateways never fall back to it, so a provider failure can't be masked as
// a success.
type DemoGateway struct {
	cfg    Config
	logger *zap.Logger
}

func NewDemoGateway(cfg Config, logger *zap.Logger) *DemoGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Warn("payment demo mode enabled: no real payments will be taken")
	return &DemoGateway{cfg: cfg, logger: logger}
}

func (g *DemoGateway) CreateSession(ctx context.Context, b *domain.Booking) (*Session, error) {
	ref := "sess_demo_" + uuid.NewString()
	redirect := g.cfg.SuccessURL + "?session_id=" + url.QueryEscape(ref)

	g.logger.Info("demo checkout session created",
		zap.Int64("booking_id", b.ID),
		zap.String("session_id", ref),
	)
	return &Session{Reference: ref, RedirectURL: redirect}, nil
}

func (g *DemoGateway) Completed(ctx context.Context, ref string) (bool, error) {
	return true, nil
}
