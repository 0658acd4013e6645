package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"academy-system/internal/services"
	"academy-system/internal/store"
)

type BookingHandler struct {
	bookings *services.BookingService
	members  *store.MemberStore
}

func NewBookingHandler(bookings *services.BookingService, members *store.MemberStore) *BookingHandler {
	return &BookingHandler{bookings: bookings, members: members}
}

func (h *BookingHandler) GetBookedClasses(e *core.RequestEvent) error {
	member, err := resolveMember(e, h.members)
	if err != nil {
		return apiError(err)
	}

	ids, err := h.bookings.BookedClassIDs(e.Request.Context(), member.ID)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"booked_classes_id": ids})
}

func (h *BookingHandler) BookClass(e *core.RequestEvent) error {
	member, err := resolveMember(e, h.members)
	if err != nil {
		return apiError(err)
	}

	classID, err := strconv.Atoi(e.Request.PathValue("classId"))
	if err != nil {
		return apis.NewBadRequestError("invalid class id", err)
	}

	ids, err := h.bookings.Book(e.Request.Context(), member.ID, classID, time.Now().UTC())
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"booked_classes_id": ids})
}

func (h *BookingHandler) CancelClass(e *core.RequestEvent) error {
	member, err := resolveMember(e, h.members)
	if err != nil {
		return apiError(err)
	}

	classID, err := strconv.Atoi(e.Request.PathValue("classId"))
	if err != nil {
		return apis.NewBadRequestError("invalid class id", err)
	}

	ids, err := h.bookings.Cancel(e.Request.Context(), member.ID, classID)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"booked_classes_id": ids})
}

// UpdateBookedClasses accepts either a full replacement list or a single
// add/remove action, matching the two client call styles.
func (h *BookingHandler) UpdateBookedClasses(e *core.RequestEvent) error {
	member, err := resolveMember(e, h.members)
	if err != nil {
		return apiError(err)
	}

	var req struct {
		BookedClassIDs *[]int `json:"booked_classes_id"`
		Action         string `json:"action"`
		ClassID        int    `json:"class_id"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("invalid request body", err)
	}

	ctx := e.Request.Context()
	now := time.Now().UTC()

	var ids []int
	switch {
	case req.BookedClassIDs != nil:
		ids, err = h.bookings.Replace(ctx, member.ID, *req.BookedClassIDs, now)
	case req.Action == "add":
		ids, err = h.bookings.Book(ctx, member.ID, req.ClassID, now)
	case req.Action == "remove":
		ids, err = h.bookings.Cancel(ctx, member.ID, req.ClassID)
	default:
		return apis.NewBadRequestError("expected booked_classes_id or an add/remove action", nil)
	}
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"booked_classes_id": ids})
}
