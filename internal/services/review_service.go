package services

import (
	"fmt"
	"strings"

	"closetloop/internal/domain"
	"closetloop/internal/repos"

	"github.com/google/uuid"
)

// ReviewService is the feedback store. It is deliberately decoupled
// from order and swap state.
type ReviewService struct {
	Reviews *repos.ReviewRepo
}

func NewReviewService(reviews *repos.ReviewRepo) *ReviewService {
	return &ReviewService{Reviews: reviews}
}

func (s *ReviewService) Add(userID, productID string, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be 1-5", domain.ErrValidation)
	}
	rv := &domain.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	}
	if err := s.Reviews.Insert(rv); err != nil {
		return nil, err
	}
	return rv, nil
}

// Edit and Delete are author-only.
func (s *ReviewService) Edit(reviewID, callerID string, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be 1-5", domain.ErrValidation)
	}
	rv, err := s.Reviews.Get(reviewID)
	if err != nil {
		return nil, err
	}
	if rv.UserID != callerID {
		return nil, fmt.Errorf("%w: review %s belongs to %s", domain.ErrAuthorization, reviewID, rv.UserID)
	}
	if err := s.Reviews.Update(reviewID, rating, strings.TrimSpace(comment)); err != nil {
		return nil, err
	}
	return s.Reviews.Get(reviewID)
}

func (s *ReviewService) Delete(reviewID, callerID string) error {
	rv, err := s.Reviews.Get(reviewID)
	if err != nil {
		return err
	}
	if rv.UserID != callerID {
		return fmt.Errorf("%w: review %s belongs to %s", domain.ErrAuthorization, reviewID, rv.UserID)
	}
	return s.Reviews.Delete(reviewID)
}

func (s *ReviewService) ForProduct(productID string) ([]domain.Review, error) {
	return s.Reviews.ListByProduct(productID)
}
