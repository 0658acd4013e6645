package services

import (
	"context"

	"academy-system/models"
)

// MemberStore is the persistence surface the services need for member
// documents: the profile with its owned subscription and booked-class ids.
type MemberStore interface {
	Get(ctx context.Context, memberID string) (*models.Member, error)
	BookedClassIDs(ctx context.Context, memberID string) ([]int, error)
	SetBookedClassIDs(ctx context.Context, memberID string, ids []int) error
	UpdateSubscription(ctx context.Context, memberID string, sub models.Subscription) error
}

// ClassStore is the persistence surface for class occurrences. AdjustSpots
// must be an atomic conditional read-modify-write on the backing store; it
// is the only cross-member serialization point in the booking path.
type ClassStore interface {
	Get(ctx context.Context, classID int) (*models.ClassOccurrence, error)
	List(ctx context.Context, limit int) ([]models.ClassOccurrence, error)
	AdjustSpots(ctx context.Context, classID, delta int) (*models.ClassOccurrence, error)
}
