package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/isdelr/taskdeck-be/internal/models"
	"github.com/isdelr/taskdeck-be/internal/services"
)

// UserStore persists user identities.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user. The username uniqueness check happens at the
// database, not here, so concurrent inserts of the same name resolve to
// exactly one winner; the losers get services.ErrDuplicateUsername.
func (s *UserStore) Create(ctx context.Context, username, passwordHash string) (models.User, error) {
	id := uuid.New().String()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users(id, username, password_hash) VALUES(?, ?, ?)",
		id, username, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, services.ErrDuplicateUsername
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	user, found, err := s.ByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, fmt.Errorf("inserted user %s not found", id)
	}
	return user, nil
}

// ByUsername retrieves a single user by username, including the password
// hash. The second return value is false when no such user exists.
func (s *UserStore) ByUsername(ctx context.Context, username string) (models.User, bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username = ?", username)
	return s.scanUser(row)
}

// ByID retrieves a single user by their ID.
func (s *UserStore) ByID(ctx context.Context, id string) (models.User, bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE id = ?", id)
	return s.scanUser(row)
}

func (s *UserStore) scanUser(row *sql.Row) (models.User, bool, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, false, nil
		}
		return models.User{}, false, fmt.Errorf("scan user: %w", err)
	}
	return user, true, nil
}
