// Package auth implements the bearer-token codec. A token is a compact JWT
// carrying the user id as subject and a second-resolution expiration; it is
// never stored server-side, so validity is decided purely by signature and
// expiry at decode time. Issued tokens cannot be revoked before they expire.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/myhome-soft/myhome/internal/common"
)

// MinSecretLen is the smallest acceptable signing secret, in bytes. HS512
// keys below the hash output size weaken the HMAC, so shorter secrets are
// rejected outright.
const MinSecretLen = 64

// AppJwt is the identity claim carried inside a bearer token. It is a value
// object: built for a single login, encoded, and discarded.
type AppJwt struct {
	UserID     string
	Expiration time.Time
}

// Encode signs the claim with HS512 and returns the compact token string.
func Encode(claim AppJwt, secret []byte) (string, error) {
	if len(secret) < MinSecretLen {
		return "", common.ErrWeakSecret
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   claim.UserID,
		ExpiresAt: jwt.NewNumericDate(claim.Expiration),
	})

	return token.SignedString(secret)
}

// Decode verifies the signature and expiry and reconstructs the claim.
// An expired token yields common.ErrTokenExpired; any other failure
// (bad signature, wrong algorithm, malformed structure) yields
// common.ErrTokenInvalid.
func Decode(tokenString string, secret []byte) (AppJwt, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return AppJwt{}, common.ErrTokenExpired
		}
		return AppJwt{}, common.ErrTokenInvalid
	}

	if !token.Valid || claims.ExpiresAt == nil {
		return AppJwt{}, common.ErrTokenInvalid
	}

	return AppJwt{UserID: claims.Subject, Expiration: claims.ExpiresAt.Time}, nil
}
