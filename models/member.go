package models

import (
	"time"
)

type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "Active"
	StatusInactive SubscriptionStatus = "Inactive"
)

type Member struct {
	ID             string       `json:"id"`
	UserID         string       `json:"user_id,omitempty"`
	Name           string       `json:"name"`
	Rank           string       `json:"rank,omitempty"`
	Subscription   Subscription `json:"subscription"`
	BookedClassIDs []int        `json:"booked_classes_id"`
}

// Subscription is the membership period owned by a single member. The
// persisted Status field is a display cache only; every decision path must
// derive the status from Expiry via StatusAt.
type Subscription struct {
	PlanID string `json:"plan_id,omitempty"`
	Start  string `json:"start,omitempty"`
	Expiry string `json:"expiry,omitempty"`
	Status string `json:"status,omitempty"`
}

// ExpiryTime parses the stored expiry timestamp. The second return value is
// false when the field is absent or not a valid RFC3339 instant.
func (s Subscription) ExpiryTime() (time.Time, bool) {
	if s.Expiry == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s.Expiry)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StatusAt derives the subscription status from Expiry at the given instant.
// A missing or unparseable expiry means Inactive.
func (s Subscription) StatusAt(now time.Time) SubscriptionStatus {
	expiry, ok := s.ExpiryTime()
	if !ok || expiry.Before(now) {
		return StatusInactive
	}
	return StatusActive
}
