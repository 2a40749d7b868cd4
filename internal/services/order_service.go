package services

import (
	"fmt"
	"time"

	"closetloop/internal/domain"
	"closetloop/internal/repos"

	"github.com/google/uuid"
)

type OrderService struct {
	Orders   *repos.OrderRepo
	Products *repos.ProductRepo
	Carts    *repos.CartRepo
}

func NewOrderService(orders *repos.OrderRepo, products *repos.ProductRepo, carts *repos.CartRepo) *OrderService {
	return &OrderService{Orders: orders, Products: products, Carts: carts}
}

// Place claims the product and opens a PENDING rental order. The claim
// is a conditional update on the availability flag, so two concurrent
// renters cannot both succeed.
func (s *OrderService) Place(caller *domain.User, productID string) (*domain.Order, error) {
	if err := Allowed(caller, ActionPlaceOrder, time.Now()); err != nil {
		return nil, err
	}
	p, err := s.Products.Get(productID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID == caller.ID {
		return nil, fmt.Errorf("%w: product %s", domain.ErrSelfRental, productID)
	}
	if err := s.Products.Claim(productID); err != nil {
		return nil, err
	}

	o := &domain.Order{
		ID:           uuid.NewString(),
		UserID:       caller.ID,
		ProductID:    p.ID,
		OwnerID:      p.OwnerID,
		DurationDays: p.DurationDays,
		Status:       domain.OrderPending,
	}
	if err := s.Orders.Insert(o); err != nil {
		// Give the claim back; the order never existed.
		_ = s.Products.Release(productID)
		return nil, err
	}
	return o, nil
}

// AdvanceStatus drives the forward-only order state machine. Only the
// listing owner or an admin may advance; RETURNED releases the product
// unless it was force-removed in the meantime.
func (s *OrderService) AdvanceStatus(orderID, newStatus string, caller *domain.User) (*domain.Order, error) {
	o, err := s.Orders.Get(orderID)
	if err != nil {
		return nil, err
	}
	if caller == nil || (caller.ID != o.OwnerID && !caller.IsAdmin) {
		return nil, fmt.Errorf("%w: order %s belongs to owner %s", domain.ErrAuthorization, orderID, o.OwnerID)
	}

	var from string
	switch newStatus {
	case domain.OrderShipped:
		from = domain.OrderPending
	case domain.OrderReturned:
		from = domain.OrderShipped
	default:
		return nil, fmt.Errorf("%w: order %s cannot move to %q", domain.ErrInvalidTransition, orderID, newStatus)
	}
	if o.Status != from {
		return nil, fmt.Errorf("%w: order %s is %s, expected %s", domain.ErrInvalidTransition, orderID, o.Status, from)
	}
	if err := s.Orders.AdvanceStatus(orderID, from, newStatus); err != nil {
		return nil, err
	}
	if newStatus == domain.OrderReturned {
		if err := s.Products.Release(o.ProductID); err != nil {
			return nil, err
		}
	}
	return s.Orders.Get(orderID)
}

// CheckoutResult reports the outcome for one cart line.
type CheckoutResult struct {
	ProductID string `json:"productId"`
	OrderID   string `json:"orderId,omitempty"`
	Placed    bool   `json:"placed"`
	Error     string `json:"error,omitempty"`
}

// Checkout drains the caller's cart, placing one order per line. Each
// line is independently atomic: a failure on one line does not abort
// the others. Successful lines leave the cart; failed lines stay.
func (s *OrderService) Checkout(caller *domain.User) ([]CheckoutResult, error) {
	lines, err := s.Carts.Lines(caller.ID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrValidation)
	}

	results := make([]CheckoutResult, 0, len(lines))
	for _, l := range lines {
		res := CheckoutResult{ProductID: l.ProductID}
		o, err := s.Place(caller, l.ProductID)
		if err != nil {
			res.Error = err.Error()
		} else {
			res.OrderID = o.ID
			res.Placed = true
			_ = s.Carts.RemoveLine(caller.ID, l.ProductID)
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *OrderService) ListByRenter(userID string) ([]domain.Order, error) {
	return s.Orders.ListByRenter(userID)
}

func (s *OrderService) ListByOwner(ownerID string) ([]domain.Order, error) {
	return s.Orders.ListByOwner(ownerID)
}
