package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"academy-system/internal/checkout"
	"academy-system/internal/status"
	"academy-system/models"
	"academy-system/monitoring"
	"academy-system/utils"
)

const (
	checkoutSessionPrefix   = "checkout:session:"
	checkoutProcessedPrefix = "checkout:processed:"
)

// PaymentService drives the checkout flow: it creates provider sessions for
// plan purchases and, on verification, extends the subscription exactly once
// per paid session. Session bookkeeping and the processed-marker live in
// Redis so retried verifications stay idempotent across restarts.
type PaymentService struct {
	Redis    *redis.Client
	provider checkout.Provider
	subs     *SubscriptionService
	breaker  *utils.CircuitBreaker
	monitor  *monitoring.Monitor

	sessionTTL time.Duration
}

func NewPaymentService(rdb *redis.Client, provider checkout.Provider, subs *SubscriptionService, monitor *monitoring.Monitor, sessionTTL time.Duration) *PaymentService {
	return &PaymentService{
		Redis:      rdb,
		provider:   provider,
		subs:       subs,
		breaker:    utils.NewCircuitBreaker("checkout-provider"),
		monitor:    monitor,
		sessionTTL: sessionTTL,
	}
}

// PriceCents converts a plan's dollar price to integer cents for the
// provider. Decimal arithmetic avoids float drift on prices like 29.99.
func PriceCents(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// CreateCheckout opens a provider session for the given plan and records the
// member/plan mapping so verification can resolve it later.
func (s *PaymentService) CreateCheckout(ctx context.Context, memberID, planID string) (*models.CheckoutSession, error) {
	plan, ok := models.PlanByID(planID)
	if !ok {
		s.track("create", "invalid_plan")
		return nil, fmt.Errorf("plan %q: %w", planID, status.ErrInvalidPlan)
	}

	amountCents := PriceCents(plan.Price)

	res, err := s.breaker.Execute(ctx, func() (any, error) {
		return s.provider.CreateSession(ctx, plan, memberID, amountCents)
	})
	if err != nil {
		s.track("create", "provider_error")
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	provSession := res.(checkout.Session)

	now := time.Now().UTC()
	sessionKey := checkoutSessionPrefix + provSession.ID
	if err := s.Redis.HSet(ctx, sessionKey,
		"member_id", memberID,
		"plan_id", plan.ID,
		"amount_cents", amountCents,
		"created_at", now.Format(time.RFC3339),
	).Err(); err != nil {
		s.track("create", "redis_error")
		return nil, fmt.Errorf("store checkout session: %w", err)
	}
	if err := s.Redis.Expire(ctx, sessionKey, s.sessionTTL).Err(); err != nil {
		slog.Warn("checkout session ttl not set", "session", provSession.ID, "error", err)
	}

	s.track("create", "success")
	slog.Info("checkout session created",
		"session", provSession.ID, "member", memberID, "plan", plan.ID, "amount_cents", amountCents)

	return &models.CheckoutSession{
		SessionID:   provSession.ID,
		MemberID:    memberID,
		PlanID:      plan.ID,
		AmountCents: amountCents,
		RedirectURL: provSession.RedirectURL,
		CreatedAt:   now,
	}, nil
}

// VerifySession asks the provider whether the session was paid and, on the
// first paid verification, extends the member's subscription by the plan
// bought. A SETNX marker guards the extension so re-verifying the same
// session reports paid but never extends twice.
func (s *PaymentService) VerifySession(ctx context.Context, sessionID string, now time.Time) (*models.CheckoutResult, error) {
	res, err := s.breaker.Execute(ctx, func() (any, error) {
		return s.provider.SessionPaid(ctx, sessionID)
	})
	if err != nil {
		s.track("verify", "provider_error")
		return nil, fmt.Errorf("verify checkout session: %w", err)
	}
	paid := res.(bool)

	result := &models.CheckoutResult{SessionID: sessionID, Paid: paid}
	if !paid {
		s.track("verify", "unpaid")
		return result, nil
	}

	processedKey := checkoutProcessedPrefix + sessionID
	first, err := s.Redis.SetNX(ctx, processedKey, "1", 0).Result()
	if err != nil {
		s.track("verify", "redis_error")
		return nil, fmt.Errorf("mark session processed: %w", err)
	}
	if !first {
		s.track("verify", "duplicate")
		return result, nil
	}

	session, err := s.Redis.HGetAll(ctx, checkoutSessionPrefix+sessionID).Result()
	if err != nil || len(session) == 0 {
		s.Redis.Del(ctx, processedKey)
		s.track("verify", "session_missing")
		if err == nil {
			err = fmt.Errorf("checkout session %s: %w", sessionID, status.ErrNotFound)
		}
		return nil, err
	}

	if _, err := s.subs.Extend(ctx, session["member_id"], session["plan_id"], now); err != nil {
		// Release the marker so a retry can run the extension.
		s.Redis.Del(ctx, processedKey)
		s.track("verify", "extend_error")
		return nil, fmt.Errorf("extend subscription for session %s: %w", sessionID, err)
	}

	result.Extended = true
	s.track("verify", "extended")
	slog.Info("checkout session verified",
		"session", sessionID, "member", session["member_id"], "plan", session["plan_id"])
	return result, nil
}

func (s *PaymentService) track(operation, result string) {
	if s.monitor != nil {
		s.monitor.TrackCheckoutOperation(operation, result)
	}
}
