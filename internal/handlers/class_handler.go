package handlers

import (
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"academy-system/internal/store"
)

type ClassHandler struct {
	classes *store.ClassStore
}

func NewClassHandler(classes *store.ClassStore) *ClassHandler {
	return &ClassHandler{classes: classes}
}

// GetClasses returns the schedule ordered by start time. An optional
// ?limit= query caps the page size.
func (h *ClassHandler) GetClasses(e *core.RequestEvent) error {
	limit := 0
	if raw := e.Request.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return apis.NewBadRequestError("invalid limit", err)
		}
		limit = n
	}

	classes, err := h.classes.List(e.Request.Context(), limit)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"classes": classes,
		"total":   len(classes),
	})
}

func (h *ClassHandler) GetClass(e *core.RequestEvent) error {
	classID, err := strconv.Atoi(e.Request.PathValue("classId"))
	if err != nil {
		return apis.NewBadRequestError("invalid class id", err)
	}

	class, err := h.classes.Get(e.Request.Context(), classID)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, class)
}

// AdjustSpots lets an operator correct a seat counter by one in either
// direction, for walk-ins and manual fixes. Bounds are enforced by the
// store's conditional update.
func (h *ClassHandler) AdjustSpots(e *core.RequestEvent) error {
	classID, err := strconv.Atoi(e.Request.PathValue("classId"))
	if err != nil {
		return apis.NewBadRequestError("invalid class id", err)
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("invalid request body", err)
	}
	if req.Delta != 1 && req.Delta != -1 {
		return apis.NewBadRequestError("delta must be 1 or -1", nil)
	}

	class, err := h.classes.AdjustSpots(e.Request.Context(), classID, req.Delta)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, class)
}
