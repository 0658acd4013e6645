package handlers

import (
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"academy-system/internal/services"
	"academy-system/internal/store"
)

type SubscriptionHandler struct {
	subs    *services.SubscriptionService
	members *store.MemberStore
	plans   *store.PlanStore
}

func NewSubscriptionHandler(subs *services.SubscriptionService, members *store.MemberStore, plans *store.PlanStore) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs, members: members, plans: plans}
}

// GetSubscription reports the caller's subscription with the status derived
// from the expiry at request time, never the persisted cache.
func (h *SubscriptionHandler) GetSubscription(e *core.RequestEvent) error {
	member, err := resolveMember(e, h.members)
	if err != nil {
		return apiError(err)
	}

	sub, derived, err := h.subs.Get(e.Request.Context(), member.ID, time.Now().UTC())
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"plan_id": sub.PlanID,
		"start":   sub.Start,
		"expiry":  sub.Expiry,
		"status":  derived,
	})
}

// ExtendSubscription applies a plan purchase to an arbitrary member. This is
// the operator path for comped or offline payments; the member path goes
// through checkout verification.
func (h *SubscriptionHandler) ExtendSubscription(e *core.RequestEvent) error {
	memberID := e.Request.PathValue("memberId")
	planID := e.Request.PathValue("planId")
	if memberID == "" || planID == "" {
		return apis.NewBadRequestError("member id and plan id are required", nil)
	}

	sub, err := h.subs.Extend(e.Request.Context(), memberID, planID, time.Now().UTC())
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, sub)
}

func (h *SubscriptionHandler) GetPlans(e *core.RequestEvent) error {
	plans, err := h.plans.List(e.Request.Context())
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"plans": plans})
}
