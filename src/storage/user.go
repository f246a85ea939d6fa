package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// GetUserByID retrieves a user by id. Returns nil when the user is unknown.
func GetUserByID(ctx context.Context, db sqlscan.Querier, userID string) (*User, error) {
	query := `SELECT id, email, name, email_verified, created_at, updated_at FROM users WHERE id = ?`
	var u User
	err := sqlscan.Get(ctx, db, &u, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user row.
func CreateUser(ctx context.Context, db Execer, user *User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	query := `INSERT INTO users (id, email, name, email_verified, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, user.ID, user.Email, user.Name, user.EmailVerified, user.CreatedAt, user.UpdatedAt)
	return err
}

// EnsureUser returns the user for the trusted request id, creating a
// placeholder row on first contact.
func EnsureUser(ctx context.Context, db ExecQuerier, userID string) (*User, error) {
	user, err := GetUserByID(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	name := "App User"
	user = &User{
		ID:    userID,
		Email: fmt.Sprintf("%s@placeholder.com", userID),
		Name:  &name,
	}
	if err := CreateUser(ctx, db, user); err != nil {
		return nil, err
	}
	return user, nil
}
