package services

import (
	"context"
	"fmt"
	"sync"

	"academy-system/internal/status"
	"academy-system/models"
)

// fakeMemberStore keeps member documents in a map. All methods hold the
// mutex so concurrent tests observe the same atomicity the real store has.
type fakeMemberStore struct {
	mu      sync.Mutex
	members map[string]*models.Member

	failSetBooked bool
}

func newFakeMemberStore(members ...*models.Member) *fakeMemberStore {
	s := &fakeMemberStore{members: make(map[string]*models.Member)}
	for _, m := range members {
		cp := *m
		s.members[m.ID] = &cp
	}
	return s
}

func (s *fakeMemberStore) Get(ctx context.Context, memberID string) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[memberID]
	if !ok {
		return nil, fmt.Errorf("member %s: %w", memberID, status.ErrNotFound)
	}
	cp := *m
	cp.BookedClassIDs = append([]int{}, m.BookedClassIDs...)
	return &cp, nil
}

func (s *fakeMemberStore) BookedClassIDs(ctx context.Context, memberID string) ([]int, error) {
	m, err := s.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return m.BookedClassIDs, nil
}

func (s *fakeMemberStore) SetBookedClassIDs(ctx context.Context, memberID string, ids []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSetBooked {
		return fmt.Errorf("write failed")
	}
	m, ok := s.members[memberID]
	if !ok {
		return fmt.Errorf("member %s: %w", memberID, status.ErrNotFound)
	}
	m.BookedClassIDs = append([]int{}, ids...)
	return nil
}

func (s *fakeMemberStore) UpdateSubscription(ctx context.Context, memberID string, sub models.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[memberID]
	if !ok {
		return fmt.Errorf("member %s: %w", memberID, status.ErrNotFound)
	}
	m.Subscription = sub
	return nil
}

// fakeClassStore mirrors the real store's conditional counter update: the
// bounds check and the write happen under one lock.
type fakeClassStore struct {
	mu      sync.Mutex
	classes map[int]*models.ClassOccurrence

	failAdjust map[int]error
}

func newFakeClassStore(classes ...*models.ClassOccurrence) *fakeClassStore {
	s := &fakeClassStore{
		classes:    make(map[int]*models.ClassOccurrence),
		failAdjust: make(map[int]error),
	}
	for _, c := range classes {
		cp := *c
		s.classes[c.ID] = &cp
	}
	return s
}

func (s *fakeClassStore) Get(ctx context.Context, classID int) (*models.ClassOccurrence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.classes[classID]
	if !ok {
		return nil, fmt.Errorf("class %d: %w", classID, status.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (s *fakeClassStore) List(ctx context.Context, limit int) ([]models.ClassOccurrence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ClassOccurrence, 0, len(s.classes))
	for _, c := range s.classes {
		out = append(out, *c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeClassStore) AdjustSpots(ctx context.Context, classID, delta int) (*models.ClassOccurrence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failAdjust[classID]; ok {
		return nil, err
	}
	c, ok := s.classes[classID]
	if !ok {
		return nil, fmt.Errorf("class %d: %w", classID, status.ErrNotFound)
	}
	next, err := models.ApplySpotsDelta(c.SpotsBooked, c.SpotsTotal, delta)
	if err != nil {
		return nil, err
	}
	c.SpotsBooked = next
	cp := *c
	return &cp, nil
}
