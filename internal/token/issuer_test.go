package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_AccessRoundTrip(t *testing.T) {
	codec := testCodec(t)
	issuer := NewIssuer(codec, time.Minute, time.Hour)

	tok, err := issuer.Access(42)
	require.NoError(t, err)

	claims, err := codec.Decode(tok, TypeAccess)
	require.NoError(t, err)

	id, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NotEmpty(t, claims.Nonce)

	_, err = codec.Decode(tok, TypeRefresh)
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestIssuer_RefreshRoundTrip(t *testing.T) {
	codec := testCodec(t)
	issuer := NewIssuer(codec, time.Minute, time.Hour)

	tok, err := issuer.Refresh(7)
	require.NoError(t, err)

	claims, err := codec.Decode(tok, TypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, TypeRefresh, claims.TokenType)

	_, err = codec.Decode(tok, TypeAccess)
	assert.ErrorIs(t, err, ErrWrongType)
}

// Tokens issued for the same subject within the same tick must never be
// identical strings.
func TestIssuer_SameTickUniqueness(t *testing.T) {
	codec := testCodec(t)
	issuer := NewIssuer(codec, time.Minute, time.Hour)

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		tok, err := issuer.Access(1)
		require.NoError(t, err)
		_, dup := seen[tok]
		require.False(t, dup, "duplicate token issued")
		seen[tok] = struct{}{}
	}
}

func TestIssuer_Pair(t *testing.T) {
	codec := testCodec(t)
	issuer := NewIssuer(codec, time.Minute, time.Hour)

	access, refresh, err := issuer.Pair(9)
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	_, err = codec.Decode(access, TypeAccess)
	assert.NoError(t, err)
	_, err = codec.Decode(refresh, TypeRefresh)
	assert.NoError(t, err)
}

func TestNewIssuer_Defaults(t *testing.T) {
	issuer := NewIssuer(testCodec(t), 0, 0)
	assert.Equal(t, DefaultAccessTTL, issuer.accessTTL)
	assert.Equal(t, DefaultRefreshTTL, issuer.refreshTTL)
}
