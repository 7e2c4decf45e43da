package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	uuid "github.com/satori/go.uuid"
)

type TokenClaims struct {
	UserID    uint   `json:"sub"`
	TokenID   string `json:"jti"`
	ExpiresAt int64  `json:"exp"`
	IssuedAt  int64  `json:"iat"`
}

// GenerateToken mints an HS256 JWT for the given user. The jti claim is what
// the logout denylist keys on.
func GenerateToken(userID uint, ttl time.Duration, secret string) (string, *TokenClaims, error) {
	now := time.Now().UTC()
	claims := &TokenClaims{
		UserID:    userID,
		TokenID:   uuid.NewV4().String(),
		ExpiresAt: now.Add(ttl).Unix(),
		IssuedAt:  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": claims.UserID,
		"jti": claims.TokenID,
		"exp": claims.ExpiresAt,
		"iat": claims.IssuedAt,
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, fmt.Errorf("could not sign token: %w", err)
	}
	return signed, claims, nil
}

// ValidateToken parses and verifies a JWT and returns its claims.
func ValidateToken(tokenString, secret string) (*TokenClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid token subject")
	}
	jti, _ := claims["jti"].(string)
	exp, _ := claims["exp"].(float64)
	iat, _ := claims["iat"].(float64)

	return &TokenClaims{
		UserID:    uint(sub),
		TokenID:   jti,
		ExpiresAt: int64(exp),
		IssuedAt:  int64(iat),
	}, nil
}
