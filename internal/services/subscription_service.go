package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"academy-system/internal/status"
	"academy-system/models"
	"academy-system/monitoring"
)

// SubscriptionService computes subscription status and applies plan
// purchases. It is the only writer of a member's subscription fields;
// booking and cancellation never touch them.
type SubscriptionService struct {
	members MemberStore
	monitor *monitoring.Monitor
}

func NewSubscriptionService(members MemberStore, monitor *monitoring.Monitor) *SubscriptionService {
	return &SubscriptionService{
		members: members,
		monitor: monitor,
	}
}

// ComputeStatus derives the status from the subscription's expiry at the
// given instant. The persisted status string is never consulted: storage
// may hold a stale cached value.
func (s *SubscriptionService) ComputeStatus(sub models.Subscription, now time.Time) models.SubscriptionStatus {
	return sub.StatusAt(now)
}

// Get returns the raw subscription fields plus the derived status.
func (s *SubscriptionService) Get(ctx context.Context, memberID string, now time.Time) (models.Subscription, models.SubscriptionStatus, error) {
	member, err := s.members.Get(ctx, memberID)
	if err != nil {
		return models.Subscription{}, models.StatusInactive, err
	}
	return member.Subscription, member.Subscription.StatusAt(now), nil
}

// Extend applies a plan purchase. An active subscription keeps its start
// and gets the plan's duration appended to the remaining period; a lapsed
// one restarts from now, both for the new expiry and the billing-period
// start. The duration unit is a fixed 31-day month.
func (s *SubscriptionService) Extend(ctx context.Context, memberID, planID string, now time.Time) (models.Subscription, error) {
	plan, ok := models.PlanByID(planID)
	if !ok {
		return models.Subscription{}, fmt.Errorf("plan %q: %w", planID, status.ErrInvalidPlan)
	}

	member, err := s.members.Get(ctx, memberID)
	if err != nil {
		return models.Subscription{}, err
	}

	sub := member.Subscription
	wasActive := sub.StatusAt(now) == models.StatusActive

	base := now
	if wasActive {
		base, _ = sub.ExpiryTime()
	}

	sub.PlanID = plan.ID
	sub.Expiry = base.Add(time.Duration(plan.Months) * models.MonthDuration).Format(time.RFC3339)
	if !wasActive {
		sub.Start = now.Format(time.RFC3339)
	}
	// Display cache only; readers re-derive from Expiry.
	sub.Status = string(models.StatusActive)

	if err := s.members.UpdateSubscription(ctx, memberID, sub); err != nil {
		return models.Subscription{}, err
	}

	if s.monitor != nil {
		s.monitor.TrackSubscriptionExtension(plan.ID)
	}
	slog.Info("subscription extended",
		"member", memberID,
		"plan", plan.ID,
		"expiry", sub.Expiry,
		"reactivated", !wasActive,
	)
	return sub, nil
}
