package repos

import (
	"database/sql"
	"fmt"

	"closetloop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, name, email, phone, password_hash, is_admin, banned_until, banned_forever`

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Ban suspends the user. until is an RFC3339 timestamp; empty with
// forever=true makes the ban permanent.
func (r *UserRepo) Ban(id, until string, forever bool) error {
	var u sql.NullString
	if until != "" {
		u = sql.NullString{String: until, Valid: true}
	}
	res, err := r.DB.Exec(`UPDATE users SET banned_until=?, banned_forever=? WHERE id=?`, u, forever, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *UserRepo) Unban(id string) error {
	_, err := r.DB.Exec(`UPDATE users SET banned_until=NULL, banned_forever=0 WHERE id=?`, id)
	return err
}

func (r *UserRepo) ListBanned() ([]domain.User, error) {
	out := []domain.User{}
	err := r.DB.Select(&out, `
	  SELECT `+userCols+` FROM users
	  WHERE banned_forever = 1 OR (banned_until IS NOT NULL AND banned_until > ?)
	  ORDER BY email
	`, nowRFC3339())
	return out, err
}
