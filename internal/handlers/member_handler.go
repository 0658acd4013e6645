package handlers

import (
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"academy-system/internal/store"
)

type MemberHandler struct {
	members *store.MemberStore
}

func NewMemberHandler(members *store.MemberStore) *MemberHandler {
	return &MemberHandler{members: members}
}

// GetMe returns the caller's member profile. The subscription status in the
// response is derived from the expiry, overriding whatever cache was stored.
func (h *MemberHandler) GetMe(e *core.RequestEvent) error {
	member, err := resolveMember(e, h.members)
	if err != nil {
		return apiError(err)
	}

	member.Subscription.Status = string(member.Subscription.StatusAt(time.Now().UTC()))
	return e.JSON(http.StatusOK, member)
}
