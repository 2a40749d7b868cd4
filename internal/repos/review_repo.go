package repos

import (
	"database/sql"
	"fmt"

	"closetloop/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ReviewRepo is an append-mostly feedback store, independent of order
// and swap state.
type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) Insert(rv *domain.Review) error {
	_, err := r.db.Exec(`
	  INSERT INTO reviews(id, product_id, user_id, rating, comment)
	  VALUES(?,?,?,?,?)
	`, rv.ID, rv.ProductID, rv.UserID, rv.Rating, rv.Comment)
	return err
}

func (r *ReviewRepo) Get(id string) (*domain.Review, error) {
	var rv domain.Review
	err := r.db.Get(&rv, `
	  SELECT id, product_id, user_id, rating, comment, COALESCE(created_at,'') AS created_at
	  FROM reviews WHERE id = ?
	`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: review %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepo) Update(id string, rating int, comment string) error {
	_, err := r.db.Exec(`UPDATE reviews SET rating=?, comment=? WHERE id=?`, rating, comment, id)
	return err
}

func (r *ReviewRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM reviews WHERE id=?`, id)
	return err
}

func (r *ReviewRepo) ListByProduct(productID string) ([]domain.Review, error) {
	out := []domain.Review{}
	err := r.db.Select(&out, `
	  SELECT id, product_id, user_id, rating, comment, COALESCE(created_at,'') AS created_at
	  FROM reviews WHERE product_id = ?
	  ORDER BY datetime(created_at) DESC
	`, productID)
	return out, err
}
