package identity

import (
	"context"
	"testing"

	jwtutil "bookcourier/util/jwt"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate_Success(t *testing.T) {
	tok, err := jwtutil.Issue("secret", 3, "reader@example.com", "user", 1)
	require.NoError(t, err)

	v := NewJWT("secret")
	email, err := v.Authenticate(context.Background(), "Bearer "+tok)
	require.NoError(t, err)
	require.Equal(t, "reader@example.com", email)
}

func TestAuthenticate_Failures(t *testing.T) {
	v := NewJWT("secret")

	for name, header := range map[string]string{
		"missing header": "",
		"garbage token":  "Bearer not-a-token",
		"bare bearer":    "Bearer ",
	} {
		_, err := v.Authenticate(context.Background(), header)
		require.ErrorIs(t, err, ErrUnauthenticated, name)
	}

	// signed with a different secret
	tok, err := jwtutil.Issue("other", 3, "reader@example.com", "user", 1)
	require.NoError(t, err)
	_, err = v.Authenticate(context.Background(), "Bearer "+tok)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticate_MissingEmailClaim(t *testing.T) {
	claims := jwtlib.MapClaims{"sub": int64(9)}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	v := NewJWT("secret")
	_, err = v.Authenticate(context.Background(), "Bearer "+tok)
	require.ErrorIs(t, err, ErrUnauthenticated)
}
