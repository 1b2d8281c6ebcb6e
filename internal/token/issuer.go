package token

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultAccessTTL  = 30 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Issuer mints access and refresh tokens with distinct lifetimes.
type Issuer struct {
	codec      *Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewIssuer(codec *Codec, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &Issuer{codec: codec, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (i *Issuer) AccessTTL() time.Duration { return i.accessTTL }

func (i *Issuer) Access(subject int64) (string, error) {
	return i.issue(subject, TypeAccess, i.accessTTL)
}

func (i *Issuer) Refresh(subject int64) (string, error) {
	return i.issue(subject, TypeRefresh, i.refreshTTL)
}

// Pair mints a matched access+refresh pair for the subject.
func (i *Issuer) Pair(subject int64) (access string, refresh string, err error) {
	if access, err = i.Access(subject); err != nil {
		return "", "", err
	}
	if refresh, err = i.Refresh(subject); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (i *Issuer) issue(subject int64, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	// Sub-second offset on exp plus a per-issuance nonce: two tokens for the
	// same subject in the same tick are never identical strings.
	jitter := time.Duration(rand.Intn(999)+1) * time.Millisecond
	return i.codec.Encode(Claims{
		TokenType: tokenType,
		Nonce:     uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subject, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl + jitter)),
		},
	})
}
