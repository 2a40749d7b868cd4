package services

import (
	"closetloop/internal/domain"
	"closetloop/internal/repos"
)

// WishlistService maintains each user's swap candidate list.
type WishlistService struct {
	Repo *repos.WishlistRepo
}

func NewWishlistService(r *repos.WishlistRepo) *WishlistService { return &WishlistService{Repo: r} }

func (s *WishlistService) Save(userID, productID string) error {
	return s.Repo.Add(userID, productID)
}

func (s *WishlistService) Unsave(userID, productID string) error {
	return s.Repo.Remove(userID, productID)
}

func (s *WishlistService) List(userID string) ([]domain.Product, error) {
	return s.Repo.List(userID)
}
