package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/servicelink/admin-service/internal/domain"
)

const tokenIssuer = "servicelink-admin"

var (
	// ErrTokenExpired is returned for well-formed tokens past their expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidToken covers every other parse or verification failure.
	ErrInvalidToken = errors.New("invalid token")
)

// TokenManager issues and verifies HS256 admin session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a manager; a non-positive ttl defaults to one hour.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    time.Duration(ttlMinutes) * time.Minute,
		now:    time.Now,
	}
}

// Claims is the session payload. The role is informational only: the
// middleware reloads the account and trusts the stored role.
type Claims struct {
	AccountID string      `json:"aid"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs a session token for the account and returns its expiry.
func (tm *TokenManager) GenerateToken(accountID string, role domain.Role) (string, time.Time, error) {
	now := tm.now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken verifies signature, issuer and expiry and returns the claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(*jwt.Token) (any, error) { return tm.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	case claims.AccountID == "":
		return nil, ErrInvalidToken
	}
	return claims, nil
}
