package models

import (
	"time"
)

type CheckoutSession struct {
	SessionID   string    `json:"session_id"`
	MemberID    string    `json:"member_id"`
	PlanID      string    `json:"plan_id"`
	AmountCents int64     `json:"amount_cents"`
	RedirectURL string    `json:"redirect_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type CheckoutResult struct {
	SessionID string `json:"session_id"`
	Paid      bool   `json:"paid"`
	// Extended reports whether this verification applied the subscription
	// extension. False for unpaid sessions and for repeats of an already
	// processed session.
	Extended bool `json:"extended"`
}
