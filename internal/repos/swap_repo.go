package repos

import (
	"database/sql"
	"fmt"

	"closetloop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SwapRepo struct{ db *sqlx.DB }

func NewSwapRepo(db *sqlx.DB) *SwapRepo { return &SwapRepo{db: db} }

const swapCols = `id, owner_id, requested_by_id, offered_product_id, requested_product_id,
  request_status, swap_status, COALESCE(created_at,'') AS created_at`

func (r *SwapRepo) Insert(s *domain.SwapRequest) error {
	_, err := r.db.Exec(`
	  INSERT INTO swap_requests(id, owner_id, requested_by_id, offered_product_id, requested_product_id, request_status, swap_status)
	  VALUES(?,?,?,?,?,?,?)
	`, s.ID, s.OwnerID, s.RequestedByID, s.OfferedProductID, s.RequestedProductID, s.RequestStatus, s.SwapStatus)
	return err
}

func (r *SwapRepo) Get(id string) (*domain.SwapRequest, error) {
	var s domain.SwapRequest
	err := r.db.Get(&s, `SELECT `+swapCols+` FROM swap_requests WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: swap request %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// HasPendingOffer reports whether the product already sits on the
// offered side of an undecided proposal.
func (r *SwapRepo) HasPendingOffer(productID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM swap_requests
	  WHERE offered_product_id = ? AND request_status = 'PENDING'
	`, productID)
	return n > 0, err
}

// HasActive reports whether the product is locked by a live negotiation
// on either side: an undecided proposal, or an accepted swap that has
// not come back yet.
func (r *SwapRepo) HasActive(productID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM swap_requests
	  WHERE (offered_product_id = ? OR requested_product_id = ?)
	    AND (request_status = 'PENDING'
	         OR (request_status = 'ACCEPTED' AND swap_status != 'RETURNED'))
	`, productID, productID)
	return n > 0, err
}

// Decide commits the owner's one-shot accept/decline. Zero rows means
// the request was already decided.
func (r *SwapRepo) Decide(id, decision string) error {
	res, err := r.db.Exec(`
	  UPDATE swap_requests SET request_status = ?
	  WHERE id = ? AND request_status = 'PENDING'
	`, decision, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: swap request %s", domain.ErrAlreadyDecided, id)
	}
	return nil
}

// AdvanceSwapStatus is the forward-only CAS on the fulfillment track.
func (r *SwapRepo) AdvanceSwapStatus(id, from, to string) error {
	res, err := r.db.Exec(`
	  UPDATE swap_requests SET swap_status = ?
	  WHERE id = ? AND swap_status = ? AND request_status = 'ACCEPTED'
	`, to, id, from)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: swap request %s no longer %s", domain.ErrPrecondition, id, from)
	}
	return nil
}

func (r *SwapRepo) ListSent(userID string) ([]domain.SwapRequest, error) {
	out := []domain.SwapRequest{}
	err := r.db.Select(&out, `
	  SELECT `+swapCols+` FROM swap_requests
	  WHERE requested_by_id = ?
	  ORDER BY datetime(created_at) DESC
	`, userID)
	return out, err
}

func (r *SwapRepo) ListReceived(ownerID string) ([]domain.SwapRequest, error) {
	out := []domain.SwapRequest{}
	err := r.db.Select(&out, `
	  SELECT `+swapCols+` FROM swap_requests
	  WHERE owner_id = ?
	  ORDER BY datetime(created_at) DESC
	`, ownerID)
	return out, err
}
