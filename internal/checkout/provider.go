package checkout

import (
	"context"
	"fmt"

	"academy-system/models"
)

// Session is a hosted payment session created by the external provider.
type Session struct {
	ID          string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
}

// Provider is the contract the academy needs from an external checkout
// service: create a hosted payment session for a plan, and report whether
// a session has been paid. The provider's protocol internals stay behind
// this interface.
type Provider interface {
	Name() string
	CreateSession(ctx context.Context, plan models.Plan, memberID string, amountCents int64) (Session, error)
	SessionPaid(ctx context.Context, sessionID string) (bool, error)
}

type Config struct {
	Provider   string
	SuccessURL string
	CancelURL  string
}

// NewProvider creates a checkout provider from configuration.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "dev", "":
		return NewDevProvider(cfg.SuccessURL), nil
	default:
		return nil, fmt.Errorf("unsupported checkout provider: %s", cfg.Provider)
	}
}
