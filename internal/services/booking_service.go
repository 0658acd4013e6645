package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	pubnub "github.com/pubnub/go"

	"academy-system/internal/status"
	"academy-system/models"
	"academy-system/monitoring"
)

// BookingService is the single entry point that keeps a member's
// booked-class list and the class seat counters mutually consistent,
// gated by subscription status.
//
// Operations for the same member are serialized with a keyed mutex; the
// store is embedded in this process, so the process is the single writer.
// Cross-member contention on a class is serialized by the store's atomic
// AdjustSpots instead.
type BookingService struct {
	classes ClassStore
	members MemberStore
	pubnub  *pubnub.PubNub
	monitor *monitoring.Monitor

	mu        sync.Mutex
	memberMus map[string]*sync.Mutex
}

func NewBookingService(classes ClassStore, members MemberStore, pn *pubnub.PubNub, monitor *monitoring.Monitor) *BookingService {
	return &BookingService{
		classes:   classes,
		members:   members,
		pubnub:    pn,
		monitor:   monitor,
		memberMus: make(map[string]*sync.Mutex),
	}
}

func (s *BookingService) lockMember(memberID string) *sync.Mutex {
	s.mu.Lock()
	mu, ok := s.memberMus[memberID]
	if !ok {
		mu = &sync.Mutex{}
		s.memberMus[memberID] = mu
	}
	s.mu.Unlock()

	mu.Lock()
	return mu
}

func (s *BookingService) BookedClassIDs(ctx context.Context, memberID string) ([]int, error) {
	return s.members.BookedClassIDs(ctx, memberID)
}

// Book reserves a seat in a class occurrence for the member. Preconditions
// run in order: active subscription, class exists, not already booked,
// seats available. The commit writes the ledger first and the counter
// second, so a mid-failure state under-counts capacity instead of
// over-committing it; a failed counter increment unwinds the ledger write.
func (s *BookingService) Book(ctx context.Context, memberID string, classID int, now time.Time) ([]int, error) {
	mu := s.lockMember(memberID)
	defer mu.Unlock()

	member, err := s.members.Get(ctx, memberID)
	if err != nil {
		s.track("book", "error")
		return nil, err
	}

	if member.Subscription.StatusAt(now) != models.StatusActive {
		s.track("book", "inactive")
		return nil, status.ErrSubscriptionInactive
	}

	class, err := s.classes.Get(ctx, classID)
	if err != nil {
		s.track("book", "not_found")
		return nil, err
	}

	current := member.BookedClassIDs
	if containsID(current, classID) {
		s.track("book", "duplicate")
		return nil, fmt.Errorf("class %d: %w", classID, status.ErrAlreadyBooked)
	}

	if class.Full() {
		s.track("book", "full")
		return nil, fmt.Errorf("class %d: %w", classID, status.ErrClassFull)
	}

	next := append(append([]int{}, current...), classID)
	if err := s.members.SetBookedClassIDs(ctx, memberID, next); err != nil {
		s.track("book", "error")
		return nil, err
	}

	updated, err := s.classes.AdjustSpots(ctx, classID, +1)
	if err != nil {
		// Lost the race for the last seat, or the store failed. Undo the
		// ledger write so ledger and counter stay in agreement.
		if rbErr := s.members.SetBookedClassIDs(ctx, memberID, current); rbErr != nil {
			slog.Error("booking ledger rollback failed",
				"member", memberID, "class", classID, "error", rbErr)
		}
		if errors.Is(err, status.ErrCapacityExceeded) {
			s.track("book", "full")
			return nil, fmt.Errorf("class %d: %w", classID, status.ErrClassFull)
		}
		s.track("book", "error")
		return nil, err
	}

	s.track("book", "success")
	s.publishSpots(updated)
	return next, nil
}

// Cancel releases the member's seat. There is no subscription gate: a
// lapsed member may still cancel a booking they hold. The counter is only
// decremented when the id was actually present, so a retried cancel is a
// no-op rather than a double decrement; the decrement runs before the
// ledger removal so a mid-failure state under-counts.
func (s *BookingService) Cancel(ctx context.Context, memberID string, classID int) ([]int, error) {
	mu := s.lockMember(memberID)
	defer mu.Unlock()

	current, err := s.members.BookedClassIDs(ctx, memberID)
	if err != nil {
		s.track("cancel", "error")
		return nil, err
	}

	if !containsID(current, classID) {
		s.track("cancel", "noop")
		return current, nil
	}

	updated, err := s.classes.AdjustSpots(ctx, classID, -1)
	if err != nil && !errors.Is(err, status.ErrNotFound) {
		// BelowZero here means ledger/counter drift; surface it for the
		// reconciliation pass rather than hiding it.
		s.track("cancel", "error")
		return nil, err
	}

	next := removeID(current, classID)
	if err := s.members.SetBookedClassIDs(ctx, memberID, next); err != nil {
		s.track("cancel", "error")
		return nil, err
	}

	s.track("cancel", "success")
	if updated != nil {
		s.publishSpots(updated)
	}
	return next, nil
}

// Replace overwrites the member's booked-class set in one administrative
// call. Ids not previously present are additions and pass the same
// subscription gate as Book; the whole call fails before any mutation when
// the gate fails. Counter adjustments run decrements first and unwind on
// failure, and the ledger is written once, last.
func (s *BookingService) Replace(ctx context.Context, memberID string, newIDs []int, now time.Time) ([]int, error) {
	mu := s.lockMember(memberID)
	defer mu.Unlock()

	member, err := s.members.Get(ctx, memberID)
	if err != nil {
		s.track("replace", "error")
		return nil, err
	}

	current := member.BookedClassIDs
	target := dedupeIDs(newIDs)

	var additions, removals []int
	for _, id := range target {
		if !containsID(current, id) {
			additions = append(additions, id)
		}
	}
	for _, id := range current {
		if !containsID(target, id) {
			removals = append(removals, id)
		}
	}

	if len(additions) > 0 && member.Subscription.StatusAt(now) != models.StatusActive {
		s.track("replace", "inactive")
		return nil, status.ErrSubscriptionInactive
	}
	for _, id := range additions {
		if _, err := s.classes.Get(ctx, id); err != nil {
			s.track("replace", "not_found")
			return nil, err
		}
	}

	var decremented, incremented []int
	undo := func() {
		for _, id := range incremented {
			if _, err := s.classes.AdjustSpots(ctx, id, -1); err != nil {
				slog.Error("replace rollback failed", "member", memberID, "class", id, "error", err)
			}
		}
		for _, id := range decremented {
			if _, err := s.classes.AdjustSpots(ctx, id, +1); err != nil {
				slog.Error("replace rollback failed", "member", memberID, "class", id, "error", err)
			}
		}
	}

	for _, id := range removals {
		if _, err := s.classes.AdjustSpots(ctx, id, -1); err != nil {
			if errors.Is(err, status.ErrNotFound) {
				continue
			}
			undo()
			s.track("replace", "error")
			return nil, err
		}
		decremented = append(decremented, id)
	}

	for _, id := range additions {
		if _, err := s.classes.AdjustSpots(ctx, id, +1); err != nil {
			undo()
			if errors.Is(err, status.ErrCapacityExceeded) {
				s.track("replace", "full")
				return nil, fmt.Errorf("class %d: %w", id, status.ErrClassFull)
			}
			s.track("replace", "error")
			return nil, err
		}
		incremented = append(incremented, id)
	}

	if err := s.members.SetBookedClassIDs(ctx, memberID, target); err != nil {
		undo()
		s.track("replace", "error")
		return nil, err
	}

	s.track("replace", "success")
	return target, nil
}

func (s *BookingService) track(operation, result string) {
	if s.monitor != nil {
		s.monitor.TrackBookingOperation(operation, result)
	}
}

// publishSpots fans out the new seat count so clients can refresh live.
// Notification loss never fails the booking.
func (s *BookingService) publishSpots(class *models.ClassOccurrence) {
	if s.monitor != nil {
		s.monitor.SetClassOccupancy(class.ID, class.SpotsBooked, class.SpotsTotal)
	}
	if s.pubnub == nil {
		return
	}

	s.pubnub.Publish().
		Channel(fmt.Sprintf("class-%d", class.ID)).
		Message(map[string]any{
			"type":         "spots_update",
			"class_id":     class.ID,
			"spots_booked": class.SpotsBooked,
			"spots_total":  class.SpotsTotal,
		}).
		Execute()
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []int, id int) []int {
	next := make([]int, 0, len(ids))
	for _, v := range ids {
		if v != id {
			next = append(next, v)
		}
	}
	return next
}

func dedupeIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	next := make([]int, 0, len(ids))
	for _, v := range ids {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		next = append(next, v)
	}
	return next
}
