package repos

import (
	"time"

	"closetloop/internal/domain"

	"github.com/jmoiron/sqlx"
)

// WishlistRepo stores each user's swap candidate list. The swap flow
// reads it as the pool of items a proposer may offer.
type WishlistRepo struct{ db *sqlx.DB }

func NewWishlistRepo(db *sqlx.DB) *WishlistRepo { return &WishlistRepo{db: db} }

func nowRFC3339() string { return time.Now().UTC().Format(time.RFC3339) }

func (r *WishlistRepo) Add(userID, productID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO wishlist_items(user_id, product_id, created_at)
	  VALUES(?,?,?)
	  ON CONFLICT(user_id, product_id) DO NOTHING
	`, userID, productID, nowRFC3339())
	return err
}

func (r *WishlistRepo) Remove(userID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM wishlist_items WHERE user_id=? AND product_id=?`, userID, productID)
	return err
}

func (r *WishlistRepo) List(userID string) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT p.id, p.owner_id, p.name, p.size, p.color, p.gender, p.condition, p.image,
	         p.price, p.duration_days, p.available, p.removed, COALESCE(p.created_at,'') AS created_at
	  FROM wishlist_items wi JOIN products p ON p.id = wi.product_id
	  WHERE wi.user_id = ? AND p.removed = 0
	  ORDER BY wi.created_at DESC
	`, userID)
	return out, err
}
