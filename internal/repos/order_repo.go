package repos

import (
	"database/sql"
	"fmt"

	"closetloop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `id, user_id, product_id, owner_id, duration_days, status, COALESCE(placed_at,'') AS placed_at`

func (r *OrderRepo) Insert(o *domain.Order) error {
	_, err := r.db.Exec(`
	  INSERT INTO orders(id, user_id, product_id, owner_id, duration_days, status)
	  VALUES(?,?,?,?,?,?)
	`, o.ID, o.UserID, o.ProductID, o.OwnerID, o.DurationDays, o.Status)
	return err
}

func (r *OrderRepo) Get(id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// AdvanceStatus commits the transition only if the order is still in
// the expected state; a concurrent transition makes this a no-op and
// the caller gets ErrPrecondition.
func (r *OrderRepo) AdvanceStatus(id, from, to string) error {
	res, err := r.db.Exec(`
	  UPDATE orders SET status = ? WHERE id = ? AND status = ?
	`, to, id, from)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: order %s no longer %s", domain.ErrPrecondition, id, from)
	}
	return nil
}

// HasActive reports whether the product is referenced by a PENDING or
// SHIPPED order.
func (r *OrderRepo) HasActive(productID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM orders
	  WHERE product_id = ? AND status IN ('PENDING','SHIPPED')
	`, productID)
	return n > 0, err
}

func (r *OrderRepo) ListByRenter(userID string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
	  SELECT `+orderCols+` FROM orders
	  WHERE user_id = ?
	  ORDER BY datetime(placed_at) DESC
	`, userID)
	return out, err
}

func (r *OrderRepo) ListByOwner(ownerID string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
	  SELECT `+orderCols+` FROM orders
	  WHERE owner_id = ?
	  ORDER BY datetime(placed_at) DESC
	`, ownerID)
	return out, err
}
