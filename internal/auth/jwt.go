package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/isdelr/taskdeck-be/internal/models"
)

// ErrInvalidToken is returned for any token that fails verification, whether
// malformed, unsigned, or tampered with. Callers cannot tell which.
var ErrInvalidToken = errors.New("invalid auth token")

// Claims defines the JWT claims structure.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed tokens with an injected HMAC
// secret. Verification never touches storage.
type TokenManager struct {
	secret []byte
}

// NewTokenManager creates a TokenManager signing with the given secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Issue creates a new signed token carrying the user's identity.
//
// TODO: tokens carry no expiry claim and remain valid indefinitely; add an
// expiry once clients have a refresh path.
func (m *TokenManager) Issue(user models.User) (string, error) {
	claims := &Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses a token string and checks its signature, accepting only the
// HMAC method tokens are issued with.
func (m *TokenManager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
