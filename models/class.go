package models

import (
	"fmt"
	"time"

	"academy-system/internal/status"
)

// ClassOccurrence is one scheduled, time-boxed instance of a class with its
// own seat counter. SpotsBooked is only ever changed through the booking
// path's increment/decrement, never assigned from client input.
type ClassOccurrence struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Teacher         string    `json:"teacher"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	SpotsBooked     int       `json:"spots_booked"`
	SpotsTotal      int       `json:"spots_total"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
}

func (c ClassOccurrence) Full() bool {
	return c.SpotsBooked >= c.SpotsTotal
}

// ApplySpotsDelta computes the seat counter after applying delta, enforcing
// 0 <= spots_booked <= spots_total. Out-of-range requests are rejected, not
// clamped; the error carries the current counters for diagnostics.
func ApplySpotsDelta(booked, total, delta int) (int, error) {
	next := booked + delta
	if next < 0 {
		return booked, fmt.Errorf("%w (booked %d of %d)", status.ErrBelowZero, booked, total)
	}
	if next > total {
		return booked, fmt.Errorf("%w (booked %d of %d)", status.ErrCapacityExceeded, booked, total)
	}
	return next, nil
}
