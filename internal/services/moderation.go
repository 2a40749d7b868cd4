package services

import (
	"fmt"
	"time"

	"closetloop/internal/domain"
)

// Actions gated on ban status. Banned users keep read access and may
// still fulfill commitments on listings they already own.
type Action string

const (
	ActionCreateListing Action = "create-listing"
	ActionPlaceOrder    Action = "place-order"
	ActionProposeSwap   Action = "propose-swap"
)

// Allowed is the moderation gate in front of listing creation, order
// placement and swap proposals.
func Allowed(u *domain.User, action Action, now time.Time) error {
	if u == nil {
		return fmt.Errorf("%w: no caller", domain.ErrAuthorization)
	}
	if u.Banned(now) {
		return fmt.Errorf("%w: user %s is suspended, %s denied", domain.ErrAuthorization, u.ID, action)
	}
	return nil
}
