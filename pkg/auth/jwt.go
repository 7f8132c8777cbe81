package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultTokenTTL = 24 * time.Hour
	issuer          = "pededrink"
)

var (
	ErrInvalidToken = errors.New("invalid token")

	mu       sync.RWMutex
	secret   = []byte("pededrink-dev-secret")
	tokenTTL = DefaultTokenTTL
)

// Claims are the fields carried by an access token.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Configure sets the signing secret and token lifetime. Empty or zero values
// keep the current setting.
func Configure(signingSecret string, ttl time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	if signingSecret != "" {
		secret = []byte(signingSecret)
	}
	if ttl > 0 {
		tokenTTL = ttl
	}
}

// GenerateToken issues a signed HS256 token for the user.
func GenerateToken(userID, username, role string) (string, error) {
	mu.RLock()
	key, ttl := secret, tokenTTL
	mu.RUnlock()

	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token.
func ValidateToken(tokenString string) (*Claims, error) {
	mu.RLock()
	key := secret
	mu.RUnlock()

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
