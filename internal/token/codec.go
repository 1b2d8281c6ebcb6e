package token

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrExpired       = errors.New("token has expired")
	ErrMalformed     = errors.New("malformed token")
	ErrInvalidClaims = errors.New("invalid token claims")
	ErrWrongType     = errors.New("invalid token type")
)

// Claims is the payload carried by every issued token. TokenType
// discriminates access tokens from refresh tokens; Nonce makes each
// issuance unique even within the same clock tick.
type Claims struct {
	TokenType string `json:"type"`
	Nonce     string `json:"nonce,omitempty"`
	jwt.RegisteredClaims
}

// SubjectID coerces the string subject claim back to a user ID.
func (c *Claims) SubjectID() (int64, error) {
	if c.Subject == "" {
		return 0, fmt.Errorf("%w: missing subject", ErrInvalidClaims)
	}
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric subject", ErrInvalidClaims)
	}
	return id, nil
}

// Codec signs and verifies tokens with a single process-wide HMAC secret.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
}

func NewCodec(secret, algorithm string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("signing secret is required")
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC scheme", algorithm)
	}
	return &Codec{secret: []byte(secret), method: method}, nil
}

func (c *Codec) Encode(claims Claims) (string, error) {
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Decode verifies signature and expiry, then checks the type tag against
// expectedType. The token type is only trusted once the signature has
// verified: a token signed with the wrong secret always classifies as
// malformed, never as expired or wrong-type. A genuine token that is both
// expired and of the wrong type reports the type mismatch, which is the
// more useful error for a caller holding the wrong kind of token.
func (c *Codec) Decode(tokenStr, expectedType string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		if expectedType != "" && claims.TokenType != expectedType {
			return nil, fmt.Errorf("%w: expected %s token", ErrWrongType, expectedType)
		}
		return nil, ErrExpired
	default:
		return nil, ErrMalformed
	}

	if expectedType != "" && claims.TokenType != expectedType {
		return nil, fmt.Errorf("%w: expected %s token", ErrWrongType, expectedType)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidClaims)
	}
	return claims, nil
}
