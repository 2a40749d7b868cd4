package domain

import (
	"database/sql"
	"time"
)

type User struct {
	ID            string         `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	Email         string         `db:"email" json:"email"`
	Phone         string         `db:"phone" json:"phone"`
	Hash          string         `db:"password_hash" json:"-"`
	IsAdmin       bool           `db:"is_admin" json:"isAdmin"`
	BannedUntil   sql.NullString `db:"banned_until" json:"bannedUntil"`
	BannedForever bool           `db:"banned_forever" json:"bannedForever"`
}

// Banned reports whether the user is suspended at the given instant.
// An unparseable banned_until value counts as not banned.
func (u *User) Banned(now time.Time) bool {
	if u.BannedForever {
		return true
	}
	if !u.BannedUntil.Valid {
		return false
	}
	until, err := time.Parse(time.RFC3339, u.BannedUntil.String)
	if err != nil {
		return false
	}
	return now.Before(until)
}
