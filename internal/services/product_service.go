package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"closetloop/internal/domain"
	"closetloop/internal/filter"
	"closetloop/internal/repos"

	"github.com/google/uuid"
)

type ProductService struct {
	Products *repos.ProductRepo
	Orders   *repos.OrderRepo
	Swaps    *repos.SwapRepo
}

func NewProductService(products *repos.ProductRepo, orders *repos.OrderRepo, swaps *repos.SwapRepo) *ProductService {
	return &ProductService{Products: products, Orders: orders, Swaps: swaps}
}

type NewListing struct {
	Name         string
	Size         string
	Color        string
	Gender       string
	Condition    string
	Image        string
	Price        *float64
	DurationDays int
}

// Create adds a listing owned by the caller. Gated on ban status.
func (s *ProductService) Create(caller *domain.User, in NewListing) (*domain.Product, error) {
	if err := Allowed(caller, ActionCreateListing, time.Now()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if in.DurationDays <= 0 {
		return nil, fmt.Errorf("%w: duration must be a positive day count", domain.ErrValidation)
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}

	p := &domain.Product{
		ID:           uuid.NewString(),
		OwnerID:      caller.ID,
		Name:         strings.TrimSpace(in.Name),
		Size:         in.Size,
		Color:        in.Color,
		Gender:       in.Gender,
		Condition:    in.Condition,
		Image:        in.Image,
		DurationDays: in.DurationDays,
		Available:    true,
	}
	if in.Price != nil {
		p.Price = sql.NullFloat64{Float64: *in.Price, Valid: true}
	}
	if err := s.Products.Insert(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Browse lists non-removed products narrowed by the filter set.
func (s *ProductService) Browse(f filter.FilterSet) ([]domain.Product, error) {
	all, err := s.Products.ListActive()
	if err != nil {
		return nil, err
	}
	if f.Empty() {
		return all, nil
	}
	out := all[:0]
	for _, p := range all {
		if filter.Matches(p, f) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *ProductService) Get(id string) (*domain.Product, error) {
	return s.Products.Get(id)
}

func (s *ProductService) ByOwner(ownerID string) ([]domain.Product, error) {
	return s.Products.ListByOwner(ownerID)
}

// ToggleAvailability flips the listing's flag. Only the owner may do
// this; admins use ForceRemove instead.
func (s *ProductService) ToggleAvailability(productID, callerID string) (*domain.Product, error) {
	p, err := s.Products.Get(productID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != callerID {
		return nil, fmt.Errorf("%w: product %s is not owned by %s", domain.ErrAuthorization, productID, callerID)
	}
	if !p.Available {
		// Re-listing is blocked while any commitment still holds the
		// item; the return (or decline) flow releases it, not the owner.
		renting, err := s.Orders.HasActive(productID)
		if err != nil {
			return nil, err
		}
		if renting {
			return nil, fmt.Errorf("%w: product %s has an open rental", domain.ErrPrecondition, productID)
		}
		swapping, err := s.Swaps.HasActive(productID)
		if err != nil {
			return nil, err
		}
		if swapping {
			return nil, fmt.Errorf("%w: product %s is in an open swap negotiation", domain.ErrPrecondition, productID)
		}
	}
	if err := s.Products.SetAvailability(productID, p.Available, !p.Available); err != nil {
		return nil, err
	}
	return s.Products.Get(productID)
}

// ForceRemove permanently retires a listing. Admin only, irreversible;
// the row survives so order history keeps resolving.
func (s *ProductService) ForceRemove(productID string, caller *domain.User) error {
	if caller == nil || !caller.IsAdmin {
		return fmt.Errorf("%w: force remove requires admin", domain.ErrAuthorization)
	}
	return s.Products.ForceRemove(productID)
}
