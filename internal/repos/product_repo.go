package repos

import (
	"database/sql"
	"fmt"

	"closetloop/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ProductRepo is the single writer of the availability flag. All claims
// and releases are conditional UPDATEs so a concurrent commit fails
// (zero rows affected) instead of being overwritten.
type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, owner_id, name, size, color, gender, condition, image,
  price, duration_days, available, removed, COALESCE(created_at,'') AS created_at`

func (r *ProductRepo) Get(id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListActive returns all non-removed listings, newest first.
func (r *ProductRepo) ListActive() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT `+productCols+` FROM products
	  WHERE removed = 0
	  ORDER BY created_at DESC
	`)
	return out, err
}

func (r *ProductRepo) ListByOwner(ownerID string) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT `+productCols+` FROM products
	  WHERE owner_id = ?
	  ORDER BY created_at DESC
	`, ownerID)
	return out, err
}

func (r *ProductRepo) Insert(p *domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, owner_id, name, size, color, gender, condition, image, price, duration_days, available)
	  VALUES(?,?,?,?,?,?,?,?,?,?,1)
	`, p.ID, p.OwnerID, p.Name, p.Size, p.Color, p.Gender, p.Condition, p.Image, p.Price, p.DurationDays)
	return err
}

// SetAvailability is the CAS for the owner's manual toggle: the update
// only lands if the flag still holds the value the caller read. Zero
// rows means a concurrent commit won, or the product was removed.
func (r *ProductRepo) SetAvailability(id string, from, to bool) error {
	res, err := r.db.Exec(`
	  UPDATE products SET available = ?
	  WHERE id = ? AND available = ? AND removed = 0
	`, to, id, from)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: product %s changed concurrently or is removed", domain.ErrUnavailable, id)
	}
	return nil
}

// Claim atomically takes the product for a new commitment (order or
// swap). Fails if it is already claimed or removed.
func (r *ProductRepo) Claim(id string) error {
	res, err := r.db.Exec(`
	  UPDATE products SET available = 0
	  WHERE id = ? AND available = 1 AND removed = 0
	`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: product %s", domain.ErrUnavailable, id)
	}
	return nil
}

// Release restores availability after a commitment completes. A
// force-removal in the interim takes precedence, so removed rows are
// left untouched.
func (r *ProductRepo) Release(id string) error {
	_, err := r.db.Exec(`
	  UPDATE products SET available = 1
	  WHERE id = ? AND removed = 0
	`, id)
	return err
}

// ForceRemove marks the product permanently inert. Irreversible; the
// row survives for order history.
func (r *ProductRepo) ForceRemove(id string) error {
	res, err := r.db.Exec(`
	  UPDATE products SET removed = 1, available = 0 WHERE id = ?
	`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	return nil
}
