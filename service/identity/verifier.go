package identity

import (
	"context"
	"errors"

	jwtutil "bookcourier/util/jwt"
)

// ErrUnauthenticated is the single failure every verification problem
// collapses into: missing or malformed header, bad signature, expiry,
// missing subject claim. Callers never learn which.
var ErrUnauthenticated = errors.New("unauthenticated")

// Verifier is the only component allowed to turn a bearer credential into a
// subject email. Routes must never accept a caller-supplied email as an
// authorization fact without going through it.
type Verifier interface {
	Authenticate(ctx context.Context, bearerHeader string) (email string, err error)
}

type jwtVerifier struct {
	secret string
}

func NewJWT(secret string) Verifier { return &jwtVerifier{secret: secret} }

func (v *jwtVerifier) Authenticate(_ context.Context, bearerHeader string) (string, error) {
	claims, err := jwtutil.ParseAuth(bearerHeader, v.secret)
	if err != nil {
		return "", ErrUnauthenticated
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", ErrUnauthenticated
	}
	return email, nil
}
