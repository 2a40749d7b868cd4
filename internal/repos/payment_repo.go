package repos

import (
	"closetloop/internal/domain"

	"github.com/jmoiron/sqlx"
)

// PaymentRepo records gateway outcomes only; no settlement happens here.
type PaymentRepo struct{ db *sqlx.DB }

func NewPaymentRepo(db *sqlx.DB) *PaymentRepo { return &PaymentRepo{db: db} }

func (r *PaymentRepo) Insert(p *domain.Payment) error {
	_, err := r.db.Exec(`
	  INSERT INTO payments(id, order_id, user_id, amount, method, status)
	  VALUES(?,?,?,?,?,?)
	`, p.ID, p.OrderID, p.UserID, p.Amount, p.Method, p.Status)
	return err
}

func (r *PaymentRepo) ListByUser(userID string) ([]domain.Payment, error) {
	out := []domain.Payment{}
	err := r.db.Select(&out, `
	  SELECT id, order_id, user_id, amount, method, status, COALESCE(created_at,'') AS created_at
	  FROM payments WHERE user_id = ?
	  ORDER BY datetime(created_at) DESC
	`, userID)
	return out, err
}
