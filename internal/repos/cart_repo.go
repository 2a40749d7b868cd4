package repos

import (
	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartLineRow joins a cart line with its product for display and
// checkout. Price is nullable; a missing price renders as 0.
type CartLineRow struct {
	ProductID string   `db:"product_id"`
	Name      string   `db:"name"`
	OwnerID   string   `db:"owner_id"`
	Qty       int      `db:"qty"`
	Price     *float64 `db:"price"`
	Duration  int      `db:"duration_days"`
	Available bool     `db:"available"`
	Removed   bool     `db:"removed"`
}

func (r *CartRepo) UpsertLine(userID, productID string, qty int) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(user_id,product_id,qty)
		VALUES(?,?,?)
		ON CONFLICT(user_id,product_id) DO UPDATE
		SET qty = cart_items.qty + excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, userID, productID, qty)
	return err
}

func (r *CartRepo) SetQty(userID, productID string, qty int) error {
	_, err := r.db.Exec(`
		UPDATE cart_items SET qty = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND product_id = ?
	`, qty, userID, productID)
	return err
}

// RemoveLine is idempotent; removing an absent line is a no-op.
func (r *CartRepo) RemoveLine(userID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = ? AND product_id = ?`, userID, productID)
	return err
}

func (r *CartRepo) Clear(userID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = ?`, userID)
	return err
}

func (r *CartRepo) Lines(userID string) ([]CartLineRow, error) {
	out := []CartLineRow{}
	err := r.db.Select(&out, `
	  SELECT ci.product_id, p.name, p.owner_id, ci.qty, p.price, p.duration_days, p.available, p.removed
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.user_id = ?
	  ORDER BY ci.created_at
	`, userID)
	return out, err
}
