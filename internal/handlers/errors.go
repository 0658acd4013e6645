package handlers

import (
	"errors"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"academy-system/internal/status"
	"academy-system/internal/store"
	"academy-system/models"
)

// apiError translates service errors into the router's error responses so
// every handler reports the same status codes for the same failures.
func apiError(err error) error {
	switch {
	case errors.Is(err, status.ErrUnauthenticated):
		return apis.NewUnauthorizedError("authentication required", err)
	case errors.Is(err, status.ErrNotFound):
		return apis.NewNotFoundError("resource not found", err)
	case errors.Is(err, status.ErrInvalidPlan):
		return apis.NewBadRequestError("unknown plan", err)
	case errors.Is(err, status.ErrSubscriptionInactive):
		return apis.NewForbiddenError("subscription is inactive", err)
	case errors.Is(err, status.ErrAlreadyBooked),
		errors.Is(err, status.ErrClassFull),
		errors.Is(err, status.ErrBelowZero),
		errors.Is(err, status.ErrCapacityExceeded):
		return apis.NewApiError(409, err.Error(), err)
	default:
		return apis.NewInternalServerError("something went wrong", err)
	}
}

// resolveMember maps the authenticated user to their member record, creating
// it lazily for accounts that predate the create hook.
func resolveMember(e *core.RequestEvent, members *store.MemberStore) (*models.Member, error) {
	if e.Auth == nil {
		return nil, status.ErrUnauthenticated
	}

	member, err := members.FindByUser(e.Request.Context(), e.Auth.Id)
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, status.ErrNotFound) {
		return nil, err
	}

	return members.CreateForUser(e.Request.Context(), e.Auth.Id, e.Auth.GetString("name"))
}
