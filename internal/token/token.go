package token

import (
	"crypto/rsa"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appErr "github.com/devconnect/api/pkg/errors"
)

// Claims carries the identity payload: exactly one user id, plus the
// registered expiry claim.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

type UserClaim struct {
	ID string `json:"id"`
}

// Issuer signs identity tokens with the service's private key.
type Issuer interface {
	Issue(userID string) (string, error)
}

// Verifier checks a token's signature and expiry and resolves the user id.
type Verifier interface {
	Verify(token string) (string, error)
}

type rsaIssuer struct {
	key *rsa.PrivateKey
	ttl time.Duration
}

func NewIssuer(key *rsa.PrivateKey, ttl time.Duration) Issuer {
	return &rsaIssuer{key: key, ttl: ttl}
}

func (i *rsaIssuer) Issue(userID string) (string, error) {
	claims := Claims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(i.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(i.key)
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "sign token failed")
	}
	return signed, nil
}

type rsaVerifier struct {
	key *rsa.PublicKey
}

func NewVerifier(key *rsa.PublicKey) Verifier {
	return &rsaVerifier{key: key}
}

func (v *rsaVerifier) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", appErr.Wrap(err, appErr.CodeUnauthorized, "Token is not valid")
	}
	if claims.User.ID == "" {
		return "", appErr.New(appErr.CodeUnauthorized, "Token is not valid")
	}
	return claims.User.ID, nil
}
