package checkout

import (
	"context"
	"fmt"
	"sync"

	"academy-system/internal/status"
	"academy-system/models"
	"academy-system/utils"
)

// DevProvider is an in-memory checkout provider for development and tests.
// Sessions start unpaid; the payment simulation endpoint marks them paid.
type DevProvider struct {
	successURL string

	mu       sync.Mutex
	sessions map[string]*devSession
}

type devSession struct {
	memberID    string
	planID      string
	amountCents int64
	paid        bool
}

func NewDevProvider(successURL string) *DevProvider {
	return &DevProvider{
		successURL: successURL,
		sessions:   make(map[string]*devSession),
	}
}

func (p *DevProvider) Name() string { return "dev" }

func (p *DevProvider) CreateSession(ctx context.Context, plan models.Plan, memberID string, amountCents int64) (Session, error) {
	id, err := utils.GenerateCode(12)
	if err != nil {
		return Session{}, err
	}

	p.mu.Lock()
	p.sessions[id] = &devSession{
		memberID:    memberID,
		planID:      plan.ID,
		amountCents: amountCents,
	}
	p.mu.Unlock()

	return Session{
		ID:          id,
		RedirectURL: fmt.Sprintf("%s?session_id=%s", p.successURL, id),
	}, nil
}

func (p *DevProvider) SessionPaid(ctx context.Context, sessionID string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	session, ok := p.sessions[sessionID]
	if !ok {
		return false, fmt.Errorf("checkout session %s: %w", sessionID, status.ErrNotFound)
	}
	return session.paid, nil
}

// MarkPaid flips a session to paid. Exposed through the development-only
// payment simulation endpoint.
func (p *DevProvider) MarkPaid(sessionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	session, ok := p.sessions[sessionID]
	if !ok {
		return fmt.Errorf("checkout session %s: %w", sessionID, status.ErrNotFound)
	}
	session.paid = true
	return nil
}
