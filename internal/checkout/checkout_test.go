package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy-system/internal/status"
	"academy-system/models"
)

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Config{Provider: "dev", SuccessURL: "http://localhost/result"})
	require.NoError(t, err)
	assert.Equal(t, "dev", p.Name())

	// Empty defaults to the dev provider.
	p, err = NewProvider(Config{SuccessURL: "http://localhost/result"})
	require.NoError(t, err)
	assert.Equal(t, "dev", p.Name())

	_, err = NewProvider(Config{Provider: "stripe"})
	assert.Error(t, err)
}

func TestDevProvider_SessionLifecycle(t *testing.T) {
	p := NewDevProvider("http://localhost:5173/payment-result")
	ctx := context.Background()

	plan, _ := models.PlanByID("1m")
	session, err := p.CreateSession(ctx, plan, "m1", 9900)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Contains(t, session.RedirectURL, "session_id="+session.ID)

	paid, err := p.SessionPaid(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, paid, "new sessions start unpaid")

	require.NoError(t, p.MarkPaid(session.ID))

	paid, err = p.SessionPaid(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, paid)
}

func TestDevProvider_UnknownSession(t *testing.T) {
	p := NewDevProvider("http://localhost:5173/payment-result")

	_, err := p.SessionPaid(context.Background(), "NOPE")
	assert.ErrorIs(t, err, status.ErrNotFound)

	assert.ErrorIs(t, p.MarkPaid("NOPE"), status.ErrNotFound)
}
