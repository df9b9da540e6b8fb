package token_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heithemdev/rime-couture-sub002/pkg/token"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("produces url-safe tokens with 256 bits of entropy", func(t *testing.T) {
		t.Parallel()

		raw, err := token.Generate()
		require.NoError(t, err)

		decoded, err := base64.RawURLEncoding.DecodeString(raw)
		require.NoError(t, err)
		assert.Len(t, decoded, 32)
	})

	t.Run("does not repeat", func(t *testing.T) {
		t.Parallel()

		seen := make(map[string]struct{}, 1000)
		for n := 0; n < 1000; n++ {
			raw, err := token.Generate()
			require.NoError(t, err)
			_, dup := seen[raw]
			require.False(t, dup, "token collision")
			seen[raw] = struct{}{}
		}
	})
}

func TestDigest(t *testing.T) {
	t.Parallel()

	t.Run("deterministic and stable", func(t *testing.T) {
		t.Parallel()

		raw, err := token.Generate()
		require.NoError(t, err)

		first := token.Digest(raw)
		for n := 0; n < 10; n++ {
			assert.Equal(t, first, token.Digest(raw))
		}
	})

	t.Run("fixed length regardless of input", func(t *testing.T) {
		t.Parallel()

		// 32-byte SHA-256 sum encodes to 43 base64url chars without padding.
		assert.Len(t, token.Digest(""), 43)
		assert.Len(t, token.Digest("short"), 43)
		assert.Len(t, token.Digest(string(make([]byte, 4096))), 43)
	})

	t.Run("different inputs produce different digests", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, token.Digest("a"), token.Digest("b"))
	})
}

func TestConstantTimeEquals(t *testing.T) {
	t.Parallel()

	t.Run("equal strings match", func(t *testing.T) {
		t.Parallel()

		assert.True(t, token.ConstantTimeEquals("operator-secret", "operator-secret"))
	})

	t.Run("different strings of same length do not match", func(t *testing.T) {
		t.Parallel()

		assert.False(t, token.ConstantTimeEquals("operator-secret", "operator-sekret"))
	})

	t.Run("length mismatch is a safe false", func(t *testing.T) {
		t.Parallel()

		assert.False(t, token.ConstantTimeEquals("short", "longer-value"))
		assert.False(t, token.ConstantTimeEquals("", "x"))
	})

	t.Run("empty strings match", func(t *testing.T) {
		t.Parallel()

		assert.True(t, token.ConstantTimeEquals("", ""))
	})
}
