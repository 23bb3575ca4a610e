package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vbncursed/movies/pkg/auth"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// signing method, expired token, wrong issuer, garbage input.
var ErrInvalidToken = errors.New("invalid token")

type Generator struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewGenerator(secret, issuer string, ttl time.Duration) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Generate issues a signed HS256 bearer token for the user. Tokens always
// carry an expiry; there is no server-side revocation, so the TTL is the
// only bound on a token's life.
func (g *Generator) Generate(ctx context.Context, user auth.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    g.issuer,
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// Verify validates signature, expiry and issuer, and returns the subject
// (the user ID the token was issued for).
func Verify(tokenStr, secret, expectedIssuer string) (string, error) {
	secretBytes := []byte(secret)
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secretBytes, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if expectedIssuer != "" && claims.Issuer != expectedIssuer {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
