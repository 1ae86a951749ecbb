// Package auth resolves inbound requests to an authenticated identity.
// It only verifies tokens; issuing credentials (signup, login) belongs to
// an external identity provider. GenerateToken exists for tests and local
// tooling.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"messenger/domain"
)

// CustomClaims defines the structure of the data stored inside the JWT.
type CustomClaims struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenManager validates HS256 tokens against a shared secret.
type TokenManager struct {
	secret        []byte
	tokenDuration time.Duration
}

func NewTokenManager(secret string, tokenDuration time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), tokenDuration: tokenDuration}
}

// GenerateToken creates a signed JWT for a specific user.
func (t *TokenManager) GenerateToken(userID string, roles []string) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "messenger",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ValidateToken parses and validates the signature and expiration of a JWT
// string, returning the identity it carries.
func (t *TokenManager) ValidateToken(tokenString string) (domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil {
		return domain.Identity{}, err
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return domain.Identity{}, jwt.ErrSignatureInvalid
	}
	return domain.Identity{UserID: claims.UserID, Roles: claims.Roles}, nil
}
