package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrNotFound = errors.New("not found")

func GetUserByEmail(email string) (*User, error) {
	var u User
	err := DB.QueryRow(
		"SELECT id, email, name, role, is_active, created_at FROM users WHERE email = ?", email,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.IsActive, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func GetUserBySession(token string) (*User, error) {
	var u User
	var expiresAt time.Time
	err := DB.QueryRow(`
		SELECT u.id, u.email, u.name, u.role, u.is_active, u.created_at, s.expires_at
		FROM sessions s JOIN users u ON u.id = s.user_id
		WHERE s.token = ?`, token,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.IsActive, &u.CreatedAt, &expiresAt)
	if err != nil {
		return nil, ErrNotFound
	}
	if time.Now().After(expiresAt) {
		DB.Exec("DELETE FROM sessions WHERE token = ?", token)
		return nil, ErrNotFound
	}
	if !u.IsActive {
		return nil, ErrNotFound
	}
	return &u, nil
}

func ListUsers() ([]User, error) {
	rows, err := DB.Query("SELECT id, email, name, role, is_active, created_at FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func CreateUser(email, name, role string) error {
	_, err := DB.Exec("INSERT INTO users (email, name, role) VALUES (?, ?, ?)", email, name, role)
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return fmt.Errorf("user %s already exists", email)
	}
	return err
}

func UpdateUserRole(id int64, role string) error {
	_, err := DB.Exec("UPDATE users SET role = ? WHERE id = ?", role, id)
	return err
}

func SetUserActive(id int64, active bool) error {
	_, err := DB.Exec("UPDATE users SET is_active = ? WHERE id = ?", active, id)
	return err
}

func DeleteUser(id int64) error {
	_, err := DB.Exec("DELETE FROM users WHERE id = ?", id)
	return err
}

// EnsureAdmin creates or promotes the user for a configured admin email.
func EnsureAdmin(email string) (created bool, err error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return false, nil
	}
	var exists bool
	if err := DB.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", email).Scan(&exists); err != nil {
		return false, err
	}
	if exists {
		_, err := DB.Exec("UPDATE users SET role = 'ADMIN', is_active = 1 WHERE email = ?", email)
		return false, err
	}
	name := strings.Split(email, "@")[0]
	_, err = DB.Exec("INSERT INTO users (email, name, role) VALUES (?, ?, 'ADMIN')", email, name)
	return err == nil, err
}

func CreateMagicToken(email, token string) error {
	_, err := DB.Exec("INSERT INTO magic_tokens (email, token) VALUES (?, ?)", email, token)
	return err
}

func GetMagicToken(token string) (*MagicToken, error) {
	var mt MagicToken
	err := DB.QueryRow(
		"SELECT id, email, token, created_at, approved_at FROM magic_tokens WHERE token = ?", token,
	).Scan(&mt.ID, &mt.Email, &mt.Token, &mt.CreatedAt, &mt.ApprovedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &mt, nil
}

func ApproveMagicToken(id int64) error {
	_, err := DB.Exec("UPDATE magic_tokens SET approved_at = CURRENT_TIMESTAMP WHERE id = ?", id)
	return err
}

func CreateSession(userID int64, token string, expiresAt time.Time) error {
	_, err := DB.Exec("INSERT INTO sessions (user_id, token, expires_at) VALUES (?, ?, ?)", userID, token, expiresAt)
	return err
}

func DeleteSession(token string) error {
	_, err := DB.Exec("DELETE FROM sessions WHERE token = ?", token)
	return err
}
