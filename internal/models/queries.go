package models

import (
	"database/sql"
	"errors"
	"strings"
	"time"
)

var (
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateSlug      = errors.New("slug already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

func CreateUser(db *sql.DB, email, username, passwordHash string) error {
	_, err := db.Exec(`INSERT INTO users (email, username, password_hash) VALUES (?, ?, ?)`, email, username, passwordHash)
	if err != nil {
		if str := err.Error(); str != "" {
			if strings.Contains(str, "UNIQUE constraint failed: users.email") {
				return ErrDuplicateEmail
			}
			if strings.Contains(str, "UNIQUE constraint failed: users.username") {
				return ErrDuplicateUsername
			}
		}
	}
	return err
}

func GetUserByEmail(db *sql.DB, email string) (*User, error) {
	return scanUser(db.QueryRow(`SELECT id, email, username, password_hash, created_at FROM users WHERE email = ?`, email))
}

func GetUserByUsername(db *sql.DB, username string) (*User, error) {
	return scanUser(db.QueryRow(`SELECT id, email, username, password_hash, created_at FROM users WHERE username = ?`, username))
}

func GetUserByID(db *sql.DB, id int) (*User, error) {
	return scanUser(db.QueryRow(`SELECT id, email, username, password_hash, created_at FROM users WHERE id = ?`, id))
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func CreateSession(db *sql.DB, userID int, sessionID string, expires time.Time) error {
	// revoke existing
	_, err := db.Exec(`UPDATE sessions SET revoked_at = CURRENT_TIMESTAMP WHERE user_id = ? AND revoked_at IS NULL`, userID)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)`, sessionID, userID, expires)
	return err
}

func GetSession(db *sql.DB, id string) (*Session, error) {
	row := db.QueryRow(`SELECT id, user_id, created_at, expires_at, revoked_at FROM sessions WHERE id = ?`, id)
	var s Session
	var revoked sql.NullTime
	err := row.Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt, &revoked)
	if err != nil {
		return nil, err
	}
	if revoked.Valid {
		s.RevokedAt = &revoked.Time
	}
	return &s, nil
}

func RevokeSession(db *sql.DB, id string) error {
	_, err := db.Exec(`UPDATE sessions SET revoked_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}

func CreateGroup(db *sql.DB, title, slug, description string) (int64, error) {
	res, err := db.Exec(`INSERT INTO groups (title, slug, description) VALUES (?, ?, ?)`, title, slug, description)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: groups.slug") {
			return 0, ErrDuplicateSlug
		}
		return 0, err
	}
	return res.LastInsertId()
}

func GetGroupBySlug(db *sql.DB, slug string) (*Group, error) {
	row := db.QueryRow(`SELECT id, title, slug, description FROM groups WHERE slug = ?`, slug)
	var g Group
	if err := row.Scan(&g.ID, &g.Title, &g.Slug, &g.Description); err != nil {
		return nil, err
	}
	return &g, nil
}

// DeleteGroup removes the group; posts keep their rows with group_id cleared
// by the SET NULL action.
func DeleteGroup(db *sql.DB, id int) error {
	_, err := db.Exec(`DELETE FROM groups WHERE id = ?`, id)
	return err
}

func ListGroups(db *sql.DB) ([]Group, error) {
	rows, err := db.Query(`SELECT id, title, slug, description FROM groups ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var gs []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description); err != nil {
			return nil, err
		}
		gs = append(gs, g)
	}
	return gs, rows.Err()
}
