package services

import (
	"context"
	"fmt"

	"github.com/isdelr/taskdeck-be/internal/auth"
	"github.com/isdelr/taskdeck-be/internal/models"
)

// UserStoreProvider defines the storage contract the auth service depends on.
type UserStoreProvider interface {
	Create(ctx context.Context, username, passwordHash string) (models.User, error)
	ByUsername(ctx context.Context, username string) (models.User, bool, error)
}

// AuthServiceProvider defines the interface for authentication services.
type AuthServiceProvider interface {
	SignUp(ctx context.Context, username, password string) (models.User, error)
	SignIn(ctx context.Context, username, password string) (string, error)
	ResolveIdentity(ctx context.Context, claims *auth.Claims) (models.User, error)
}

// AuthService provides signup, signin and token-identity resolution.
type AuthService struct {
	users  UserStoreProvider
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStoreProvider, hasher *auth.PasswordHasher, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// SignUp hashes the password and creates the user. ErrDuplicateUsername from
// the store propagates unchanged. The returned user never carries the hash.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, username, hash)
	if err != nil {
		return models.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// SignIn verifies the credentials and issues a signed token. An unknown
// username and a wrong password fail with the same error, and the unknown
// path still pays for one hash comparison so the two are not separable by
// timing either.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (string, error) {
	user, found, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if !found {
		s.hasher.VerifyDummy(password)
		return "", ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user)
}

// ResolveIdentity looks up the user a verified token claims to be. A claim
// naming a vanished user fails with auth.ErrUnauthenticated.
func (s *AuthService) ResolveIdentity(ctx context.Context, claims *auth.Claims) (models.User, error) {
	user, found, err := s.users.ByUsername(ctx, claims.Username)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, auth.ErrUnauthenticated
	}

	user.PasswordHash = ""
	return user, nil
}
