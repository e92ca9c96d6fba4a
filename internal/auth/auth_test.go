package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

func TestJWTVerifier(t *testing.T) {
	ctx := context.Background()
	v := NewJWTVerifier("test-secret")

	t.Run("round trip", func(t *testing.T) {
		token, err := v.Issue(Principal{UserID: "u1", Email: "u1@example.com", Name: "Una"}, time.Hour)
		require.NoError(t, err)

		p, err := v.Verify(ctx, token)
		require.NoError(t, err)
		require.Equal(t, &Principal{UserID: "u1", Email: "u1@example.com", Name: "Una"}, p)
	})

	t.Run("role claim grants admin", func(t *testing.T) {
		claims := Claims{Role: "admin", RegisteredClaims: jwt.RegisteredClaims{Subject: "root"}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		p, err := v.Verify(ctx, token)
		require.NoError(t, err)
		require.True(t, p.IsAdmin)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewJWTVerifier("other").Issue(Principal{UserID: "u1"}, time.Hour)
		require.NoError(t, err)

		_, err = v.Verify(ctx, token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		old := NewJWTVerifier("test-secret")
		old.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := old.Issue(Principal{UserID: "u1"}, time.Hour)
		require.NoError(t, err)

		_, err = v.Verify(ctx, token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := v.Issue(Principal{Email: "x@example.com"}, time.Hour)
		require.NoError(t, err)

		_, err = v.Verify(ctx, token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify(ctx, "not.a.token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

type fakeIDTokens struct {
	token *fbauth.Token
	err   error
}

func (f fakeIDTokens) VerifyIDToken(context.Context, string) (*fbauth.Token, error) {
	return f.token, f.err
}

func TestFirebaseVerifier(t *testing.T) {
	ctx := context.Background()

	t.Run("maps claims", func(t *testing.T) {
		v := NewFirebaseVerifier(fakeIDTokens{token: &fbauth.Token{
			UID:    "fb-1",
			Claims: map[string]interface{}{"email": "a@example.com", "name": "Ann", "admin": true},
		}})
		p, err := v.Verify(ctx, "tok")
		require.NoError(t, err)
		require.Equal(t, &Principal{UserID: "fb-1", Email: "a@example.com", Name: "Ann", IsAdmin: true}, p)
	})

	t.Run("plain user", func(t *testing.T) {
		v := NewFirebaseVerifier(fakeIDTokens{token: &fbauth.Token{
			UID:    "fb-2",
			Claims: map[string]interface{}{"role": "editor", "admin": "yes"},
		}})
		p, err := v.Verify(ctx, "tok")
		require.NoError(t, err)
		require.False(t, p.IsAdmin)
	})

	t.Run("rejected token", func(t *testing.T) {
		v := NewFirebaseVerifier(fakeIDTokens{err: errors.New("token expired")})
		_, err := v.Verify(ctx, "tok")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
