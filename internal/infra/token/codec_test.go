package token

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClaims() *entity.AccessClaims {
	return &entity.AccessClaims{
		UserID:       uuid.MustParse("7a6f2b1e-4c3d-4a2b-9e8f-1d2c3b4a5e6f"),
		Login:        "alice",
		FullName:     "Alice Liddell",
		Role:         entity.RoleUser,
		ValidThrough: time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestCodec_EmptySecretRejected(t *testing.T) {
	codec, err := NewCodec("")
	require.Error(t, err)
	assert.Nil(t, codec)
}

func TestCodec_RoundTrip(t *testing.T) {
	codec, err := NewCodec("test_signing_secret")
	require.NoError(t, err)

	claims := testClaims()
	token, err := codec.Encode(claims)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	assert.Equal(t, strings.ToLower(parts[2]), parts[2], "signature must be lowercase hex")

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, decoded.UserID)
	assert.Equal(t, claims.Login, decoded.Login)
	assert.Equal(t, claims.FullName, decoded.FullName)
	assert.Equal(t, claims.Role, decoded.Role)
	assert.True(t, claims.ValidThrough.Equal(decoded.ValidThrough))
}

func TestCodec_Deterministic(t *testing.T) {
	codec, err := NewCodec("test_signing_secret")
	require.NoError(t, err)

	first, err := codec.Encode(testClaims())
	require.NoError(t, err)
	second, err := codec.Encode(testClaims())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCodec_TamperDetection(t *testing.T) {
	codec, err := NewCodec("test_signing_secret")
	require.NoError(t, err)

	token, err := codec.Encode(testClaims())
	require.NoError(t, err)
	require.True(t, codec.Verify(token))

	// Flipping any single character must break verification.
	for i := 0; i < len(token); i++ {
		altered := []byte(token)
		if altered[i] == 'A' {
			altered[i] = 'B'
		} else {
			altered[i] = 'A'
		}
		if string(altered) == token {
			continue
		}
		assert.False(t, codec.Verify(string(altered)), "tampered position %d still verified", i)
	}
}

func TestCodec_ForeignHeaderRejected(t *testing.T) {
	codec, err := NewCodec("test_signing_secret")
	require.NoError(t, err)

	token, err := codec.Encode(testClaims())
	require.NoError(t, err)
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// A genuine payload and signature under a swapped header segment must
	// not validate: verification binds the whole token, not just the
	// trailing signature.
	foreignHeader := base64.URLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	swapped := foreignHeader + "." + parts[1] + "." + parts[2]
	require.NotEqual(t, token, swapped)

	assert.False(t, codec.Verify(swapped))

	claims, decodeErr := codec.Decode(swapped)
	assert.Nil(t, claims)
	assert.ErrorIs(t, decodeErr, ErrMalformedToken)
}

func TestCodec_MalformedInput(t *testing.T) {
	codec, err := NewCodec("test_signing_secret")
	require.NoError(t, err)

	for _, input := range []string{
		"",
		"no-dots-at-all",
		"one.dot",
		"too.many.dots.here",
		"a.!!!notbase64!!!.c",
	} {
		assert.False(t, codec.Verify(input), "input %q verified", input)

		claims, decodeErr := codec.Decode(input)
		assert.Nil(t, claims)
		assert.ErrorIs(t, decodeErr, ErrMalformedToken)
	}
}

func TestCodec_PayloadNotJSON(t *testing.T) {
	codec, err := NewCodec("test_signing_secret")
	require.NoError(t, err)

	// A correctly signed token whose payload is not an AccessClaims document.
	token := codec.sign([]byte("plain text, not json"))
	assert.True(t, codec.Verify(token), "signature itself is genuine")

	claims, decodeErr := codec.Decode(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, decodeErr, ErrMalformedToken)
}

func TestCodec_WrongSecret(t *testing.T) {
	signer, err := NewCodec("secret_one")
	require.NoError(t, err)
	verifier, err := NewCodec("secret_two")
	require.NoError(t, err)

	token, err := signer.Encode(testClaims())
	require.NoError(t, err)

	assert.True(t, signer.Verify(token))
	assert.False(t, verifier.Verify(token))
}
