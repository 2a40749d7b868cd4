package services

import (
	"fmt"
	"time"

	"closetloop/internal/domain"
	"closetloop/internal/repos"

	"github.com/google/uuid"
)

type SwapService struct {
	Swaps    *repos.SwapRepo
	Products *repos.ProductRepo
}

func NewSwapService(swaps *repos.SwapRepo, products *repos.ProductRepo) *SwapService {
	return &SwapService{Swaps: swaps, Products: products}
}

// Propose opens a swap negotiation: the caller offers one of their
// wishlist candidates against a listing owned by ownerID. Both products
// are claimed for the duration of the negotiation so neither can be
// double-offered or rented out from under it.
func (s *SwapService) Propose(caller *domain.User, ownerID, offeredProductID, requestedProductID string) (*domain.SwapRequest, error) {
	if err := Allowed(caller, ActionProposeSwap, time.Now()); err != nil {
		return nil, err
	}
	if caller.ID == ownerID {
		return nil, fmt.Errorf("%w: user %s", domain.ErrSelfSwap, caller.ID)
	}

	offered, err := s.Products.Get(offeredProductID)
	if err != nil {
		return nil, err
	}
	requested, err := s.Products.Get(requestedProductID)
	if err != nil {
		return nil, err
	}
	if requested.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: product %s is not owned by %s", domain.ErrValidation, requestedProductID, ownerID)
	}
	if offered.OwnerID == requested.OwnerID {
		return nil, fmt.Errorf("%w: both products owned by %s", domain.ErrSelfSwap, offered.OwnerID)
	}

	dup, err := s.Swaps.HasPendingOffer(offeredProductID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, fmt.Errorf("%w: product %s", domain.ErrDuplicateProposal, offeredProductID)
	}

	// Pessimistic lock: claim both sides, undoing the first claim if
	// the second one loses a race.
	if err := s.Products.Claim(offeredProductID); err != nil {
		return nil, err
	}
	if err := s.Products.Claim(requestedProductID); err != nil {
		_ = s.Products.Release(offeredProductID)
		return nil, err
	}

	sr := &domain.SwapRequest{
		ID:                 uuid.NewString(),
		OwnerID:            ownerID,
		RequestedByID:      caller.ID,
		OfferedProductID:   offeredProductID,
		RequestedProductID: requestedProductID,
		RequestStatus:      domain.RequestPending,
		SwapStatus:         domain.SwapPending,
	}
	if err := s.Swaps.Insert(sr); err != nil {
		_ = s.Products.Release(offeredProductID)
		_ = s.Products.Release(requestedProductID)
		return nil, err
	}
	return sr, nil
}

// Respond records the owner's one-shot accept/decline. Declining
// releases both products; accepting keeps them locked for fulfillment.
func (s *SwapService) Respond(requestID string, caller *domain.User, decision string) (*domain.SwapRequest, error) {
	if decision != domain.RequestAccepted && decision != domain.RequestDeclined {
		return nil, fmt.Errorf("%w: decision %q", domain.ErrValidation, decision)
	}
	sr, err := s.Swaps.Get(requestID)
	if err != nil {
		return nil, err
	}
	if caller == nil || caller.ID != sr.OwnerID {
		return nil, fmt.Errorf("%w: swap request %s belongs to %s", domain.ErrAuthorization, requestID, sr.OwnerID)
	}
	if err := s.Swaps.Decide(requestID, decision); err != nil {
		return nil, err
	}
	if decision == domain.RequestDeclined {
		_ = s.Products.Release(sr.OfferedProductID)
		_ = s.Products.Release(sr.RequestedProductID)
	}
	return s.Swaps.Get(requestID)
}

// AdvanceSwapStatus moves the fulfillment track forward. Legal only
// once the request is accepted; RETURNED ends the negotiation and
// releases both products.
func (s *SwapService) AdvanceSwapStatus(requestID, newStatus string, caller *domain.User) (*domain.SwapRequest, error) {
	sr, err := s.Swaps.Get(requestID)
	if err != nil {
		return nil, err
	}
	if caller == nil || (caller.ID != sr.OwnerID && !caller.IsAdmin) {
		return nil, fmt.Errorf("%w: swap request %s belongs to %s", domain.ErrAuthorization, requestID, sr.OwnerID)
	}
	if sr.RequestStatus != domain.RequestAccepted {
		return nil, fmt.Errorf("%w: swap request %s is %s, not accepted", domain.ErrPrecondition, requestID, sr.RequestStatus)
	}

	var from string
	switch newStatus {
	case domain.SwapShipped:
		from = domain.SwapPending
	case domain.SwapReturned:
		from = domain.SwapShipped
	default:
		return nil, fmt.Errorf("%w: swap request %s cannot move to %q", domain.ErrInvalidTransition, requestID, newStatus)
	}
	if sr.SwapStatus != from {
		return nil, fmt.Errorf("%w: swap request %s is %s, expected %s", domain.ErrInvalidTransition, requestID, sr.SwapStatus, from)
	}
	if err := s.Swaps.AdvanceSwapStatus(requestID, from, newStatus); err != nil {
		return nil, err
	}
	if newStatus == domain.SwapReturned {
		_ = s.Products.Release(sr.OfferedProductID)
		_ = s.Products.Release(sr.RequestedProductID)
	}
	return s.Swaps.Get(requestID)
}

func (s *SwapService) ListSent(userID string) ([]domain.SwapRequest, error) {
	return s.Swaps.ListSent(userID)
}

func (s *SwapService) ListReceived(ownerID string) ([]domain.SwapRequest, error) {
	return s.Swaps.ListReceived(ownerID)
}
