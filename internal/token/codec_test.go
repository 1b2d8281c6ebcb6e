package token

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := NewCodec("test-secret", "HS256")
	require.NoError(t, err)
	return codec
}

func encodeWith(t *testing.T, codec *Codec, tokenType string, subject string, expiresAt time.Time) string {
	t.Helper()
	tok, err := codec.Encode(Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	require.NoError(t, err)
	return tok
}

func TestNewCodec(t *testing.T) {
	tests := []struct {
		name      string
		secret    string
		algorithm string
		wantErr   bool
	}{
		{name: "hs256", secret: "s", algorithm: "HS256"},
		{name: "hs512", secret: "s", algorithm: "HS512"},
		{name: "empty secret", secret: "", algorithm: "HS256", wantErr: true},
		{name: "unknown algorithm", secret: "s", algorithm: "HS257", wantErr: true},
		{name: "non-hmac algorithm", secret: "s", algorithm: "RS256", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCodec(tt.secret, tt.algorithm)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	codec := testCodec(t)
	tok := encodeWith(t, codec, TypeAccess, "42", time.Now().Add(time.Hour))

	claims, err := codec.Decode(tok, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, TypeAccess, claims.TokenType)

	id, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestDecode_WrongType(t *testing.T) {
	codec := testCodec(t)
	tok := encodeWith(t, codec, TypeAccess, "42", time.Now().Add(time.Hour))

	_, err := codec.Decode(tok, TypeRefresh)
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestDecode_Expired(t *testing.T) {
	codec := testCodec(t)
	tok := encodeWith(t, codec, TypeAccess, "42", time.Now().Add(-time.Minute))

	_, err := codec.Decode(tok, TypeAccess)
	assert.ErrorIs(t, err, ErrExpired)
}

// A token that is both expired and of the wrong type reports the type
// mismatch: the caller is holding the wrong kind of token, which is the
// more useful diagnosis.
func TestDecode_ExpiredWrongType(t *testing.T) {
	codec := testCodec(t)
	tok := encodeWith(t, codec, TypeRefresh, "42", time.Now().Add(-time.Minute))

	_, err := codec.Decode(tok, TypeAccess)
	assert.ErrorIs(t, err, ErrWrongType)
}

// A token signed with a different secret is malformed, never expired or
// wrong-type: the type tag cannot be trusted before the signature verifies.
func TestDecode_WrongSecret(t *testing.T) {
	codec := testCodec(t)
	other, err := NewCodec("other-secret", "HS256")
	require.NoError(t, err)

	tests := []struct {
		name string
		tok  string
	}{
		{name: "valid exp", tok: encodeWith(t, other, TypeAccess, "42", time.Now().Add(time.Hour))},
		{name: "expired", tok: encodeWith(t, other, TypeAccess, "42", time.Now().Add(-time.Minute))},
		{name: "wrong type", tok: encodeWith(t, other, TypeRefresh, "42", time.Now().Add(time.Hour))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.tok, TypeAccess)
			assert.ErrorIs(t, err, ErrMalformed)
			assert.NotErrorIs(t, err, ErrExpired)
			assert.NotErrorIs(t, err, ErrWrongType)
		})
	}
}

func TestDecode_Garbage(t *testing.T) {
	codec := testCodec(t)

	for _, tok := range []string{"", "not.a.jwt", "garbage"} {
		_, err := codec.Decode(tok, TypeAccess)
		assert.ErrorIs(t, err, ErrMalformed)
	}
}

func TestDecode_MissingSubject(t *testing.T) {
	codec := testCodec(t)
	tok := encodeWith(t, codec, TypeAccess, "", time.Now().Add(time.Hour))

	_, err := codec.Decode(tok, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestSubjectID_NonNumeric(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}}
	_, err := claims.SubjectID()
	assert.ErrorIs(t, err, ErrInvalidClaims)

	claims.Subject = strconv.FormatInt(7, 10)
	id, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}
