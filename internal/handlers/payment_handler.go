package handlers

import (
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"academy-system/internal/checkout"
	"academy-system/internal/services"
	"academy-system/internal/store"
)

type PaymentHandler struct {
	payments *services.PaymentService
	members  *store.MemberStore
	provider checkout.Provider
}

func NewPaymentHandler(payments *services.PaymentService, members *store.MemberStore, provider checkout.Provider) *PaymentHandler {
	return &PaymentHandler{payments: payments, members: members, provider: provider}
}

func (h *PaymentHandler) CreateCheckout(e *core.RequestEvent) error {
	member, err := resolveMember(e, h.members)
	if err != nil {
		return apiError(err)
	}

	var req struct {
		PlanID string `json:"plan_id"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("invalid request body", err)
	}
	if req.PlanID == "" {
		return apis.NewBadRequestError("plan_id is required", nil)
	}

	session, err := h.payments.CreateCheckout(e.Request.Context(), member.ID, req.PlanID)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, session)
}

// GetCheckoutSession is the return leg of the checkout redirect: it verifies
// payment with the provider and applies the subscription extension once.
func (h *PaymentHandler) GetCheckoutSession(e *core.RequestEvent) error {
	if _, err := resolveMember(e, h.members); err != nil {
		return apiError(err)
	}

	sessionID := e.Request.URL.Query().Get("session_id")
	if sessionID == "" {
		return apis.NewBadRequestError("session_id is required", nil)
	}

	result, err := h.payments.VerifySession(e.Request.Context(), sessionID, time.Now().UTC())
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, result)
}

// SimulatePayment marks a session paid without a real charge. Registered on
// development routes only.
func (h *PaymentHandler) SimulatePayment(e *core.RequestEvent) error {
	dev, ok := h.provider.(*checkout.DevProvider)
	if !ok {
		return apis.NewBadRequestError("payment simulation is unavailable for this provider", nil)
	}

	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("invalid request body", err)
	}

	if err := dev.MarkPaid(req.SessionID); err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"session_id": req.SessionID, "paid": true})
}
