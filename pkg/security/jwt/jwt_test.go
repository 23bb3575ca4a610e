package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbncursed/movies/pkg/auth"
)

func TestGenerateVerifyRoundtrip(t *testing.T) {
	user := auth.User{ID: uuid.New(), Email: "a@x.com"}
	gen := NewGenerator("secret", "movies-api", time.Hour)

	token, err := gen.Generate(context.Background(), user)
	require.NoError(t, err)

	subject, err := Verify(token, "secret", "movies-api")
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), subject)
}

func TestVerifyFailures(t *testing.T) {
	user := auth.User{ID: uuid.New()}
	gen := NewGenerator("secret", "movies-api", time.Hour)
	token, err := gen.Generate(context.Background(), user)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
		issuer string
	}{
		{"wrong secret", token, "other", "movies-api"},
		{"wrong issuer", token, "secret", "another-service"},
		{"garbage", "not.a.jwt", "secret", "movies-api"},
		{"empty", "", "secret", "movies-api"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Verify(tc.token, tc.secret, tc.issuer)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerifyExpired(t *testing.T) {
	gen := NewGenerator("secret", "movies-api", -time.Minute)
	token, err := gen.Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = Verify(token, "secret", "movies-api")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifySkipsIssuerCheckWhenUnset(t *testing.T) {
	gen := NewGenerator("secret", "whatever", time.Hour)
	token, err := gen.Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = Verify(token, "secret", "")
	assert.NoError(t, err)
}
