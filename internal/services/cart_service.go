package services

import (
	"fmt"

	"closetloop/internal/domain"
	"closetloop/internal/repos"
)

type CartService struct {
	Carts    *repos.CartRepo
	Products *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, products *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Products: products}
}

// Add appends qty to the user's line for the product, creating it if
// absent. Rejects unavailable products and the user's own listings.
func (s *CartService) Add(userID, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	p, err := s.Products.Get(productID)
	if err != nil {
		return err
	}
	if !p.Rentable() {
		return fmt.Errorf("%w: product %s", domain.ErrUnavailable, productID)
	}
	if p.OwnerID == userID {
		return fmt.Errorf("%w: product %s", domain.ErrSelfRental, productID)
	}
	return s.Carts.UpsertLine(userID, productID, qty)
}

// SetQuantity replaces the line's quantity. Anything below 1 means the
// line goes away.
func (s *CartService) SetQuantity(userID, productID string, qty int) error {
	if qty < 1 {
		return s.Carts.RemoveLine(userID, productID)
	}
	return s.Carts.SetQty(userID, productID, qty)
}

func (s *CartService) Remove(userID, productID string) error {
	return s.Carts.RemoveLine(userID, productID)
}

func (s *CartService) Clear(userID string) error {
	return s.Carts.Clear(userID)
}

type CartView struct {
	Lines []repos.CartLineRow `json:"lines"`
	Total float64             `json:"total"`
}

// View returns the cart with its running total. A line whose product
// has no price contributes 0 to the total.
func (s *CartService) View(userID string) (CartView, error) {
	lines, err := s.Carts.Lines(userID)
	if err != nil {
		return CartView{}, err
	}
	total := 0.0
	for _, l := range lines {
		if l.Price != nil {
			total += *l.Price * float64(l.Qty)
		}
	}
	return CartView{Lines: lines, Total: total}, nil
}
