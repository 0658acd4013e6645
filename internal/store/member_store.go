package store

import (
	"context"
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"academy-system/internal/status"
	"academy-system/models"
)

const membersCollection = "members"

// MemberStore holds member documents: profile fields, the owned
// subscription and the booked-class id list. Writers that touch the same
// member are serialized by the booking service, so plain record saves are
// safe here.
type MemberStore struct {
	app core.App
}

func NewMemberStore(app core.App) *MemberStore {
	return &MemberStore{app: app}
}

func (s *MemberStore) Get(ctx context.Context, memberID string) (*models.Member, error) {
	record, err := s.app.FindRecordById(membersCollection, memberID)
	if err != nil {
		return nil, fmt.Errorf("member %s: %w", memberID, status.ErrNotFound)
	}
	return memberFromRecord(record), nil
}

// FindByUser resolves the member document owned by an auth user.
func (s *MemberStore) FindByUser(ctx context.Context, userID string) (*models.Member, error) {
	record, err := s.app.FindFirstRecordByData(membersCollection, "user", userID)
	if err != nil {
		return nil, fmt.Errorf("member for user %s: %w", userID, status.ErrNotFound)
	}
	return memberFromRecord(record), nil
}

// CreateForUser creates an empty member document for a newly registered
// auth user: no subscription, no bookings.
func (s *MemberStore) CreateForUser(ctx context.Context, userID, name string) (*models.Member, error) {
	collection, err := s.app.FindCollectionByNameOrId(membersCollection)
	if err != nil {
		return nil, err
	}

	record := core.NewRecord(collection)
	record.Set("user", userID)
	record.Set("name", name)
	record.Set("subscription", models.Subscription{})
	record.Set("booked_classes_id", []int{})

	if err := s.app.Save(record); err != nil {
		return nil, fmt.Errorf("create member for user %s: %w", userID, err)
	}
	return memberFromRecord(record), nil
}

func (s *MemberStore) BookedClassIDs(ctx context.Context, memberID string) ([]int, error) {
	member, err := s.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return member.BookedClassIDs, nil
}

func (s *MemberStore) SetBookedClassIDs(ctx context.Context, memberID string, ids []int) error {
	record, err := s.app.FindRecordById(membersCollection, memberID)
	if err != nil {
		return fmt.Errorf("member %s: %w", memberID, status.ErrNotFound)
	}
	if ids == nil {
		ids = []int{}
	}
	record.Set("booked_classes_id", ids)
	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("save booked classes for member %s: %w", memberID, err)
	}
	return nil
}

func (s *MemberStore) UpdateSubscription(ctx context.Context, memberID string, sub models.Subscription) error {
	record, err := s.app.FindRecordById(membersCollection, memberID)
	if err != nil {
		return fmt.Errorf("member %s: %w", memberID, status.ErrNotFound)
	}
	record.Set("subscription", sub)
	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("save subscription for member %s: %w", memberID, err)
	}
	return nil
}

func memberFromRecord(record *core.Record) *models.Member {
	member := &models.Member{
		ID:             record.Id,
		UserID:         record.GetString("user"),
		Name:           record.GetString("name"),
		Rank:           record.GetString("rank"),
		BookedClassIDs: []int{},
	}

	// Both fields are optional json columns; an empty value is a member
	// with no subscription or bookings, not an error.
	_ = record.UnmarshalJSONField("subscription", &member.Subscription)
	_ = record.UnmarshalJSONField("booked_classes_id", &member.BookedClassIDs)

	if member.BookedClassIDs == nil {
		member.BookedClassIDs = []int{}
	}
	return member
}
