package cryptox

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/walletkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the suite fast; the algorithm is the same.
func testHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher(Params{Time: 1, MemoryKiB: 1024, Threads: 1, KeyLen: 32, SaltLen: 16})
	require.NoError(t, err)
	return h
}

func TestHash_FreshSaltDiffersPerCall(t *testing.T) {
	t.Parallel()
	h := testHasher(t)

	d1, err := h.Hash("Secr3t!", "")
	require.NoError(t, err)
	d2, err := h.Hash("Secr3t!", "")
	require.NoError(t, err)

	assert.NotEqual(t, d1.Salt, d2.Salt)
	assert.NotEqual(t, d1.Hash, d2.Hash)
}

func TestHash_DeterministicWithFixedSalt(t *testing.T) {
	t.Parallel()
	h := testHasher(t)
	salt := h.NewSalt()

	d1, err := h.Hash("Secr3t!", salt)
	require.NoError(t, err)
	d2, err := h.Hash("Secr3t!", salt)
	require.NoError(t, err)

	assert.Equal(t, d1, d2)
	assert.Equal(t, salt, d1.Salt)
}

func TestHash_DifferentPasswordSameSalt(t *testing.T) {
	t.Parallel()
	h := testHasher(t)
	salt := h.NewSalt()

	d1, err := h.Hash("Secr3t!", salt)
	require.NoError(t, err)
	d2, err := h.Hash("wrong", salt)
	require.NoError(t, err)

	assert.NotEqual(t, d1.Hash, d2.Hash)
}

func TestHash_FixedLengthEncoding(t *testing.T) {
	t.Parallel()
	h := testHasher(t)

	for _, pw := range []string{"a", "Secr3t!", strings.Repeat("x", 500)} {
		d, err := h.Hash(pw, "")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(d.Hash, "$argon2id$v=19$m=1024,t=1,p=1$"), d.Hash)
		assert.Len(t, d.Hash[strings.LastIndex(d.Hash, "$")+1:], 43)
		assert.Len(t, d.Salt, 22)
		assert.NotEqual(t, pw, d.Hash)
	}
}

func TestHash_EmptyPassword(t *testing.T) {
	t.Parallel()
	h := testHasher(t)

	_, err := h.Hash("", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
}

func TestHash_MalformedSalt(t *testing.T) {
	t.Parallel()
	h := testHasher(t)

	tests := []struct {
		name string
		salt string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"too short", "c2FsdA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Hash("Secr3t!", tt.salt)
			require.ErrorIs(t, err, common.ErrInvalidInput)
			assert.NotContains(t, err.Error(), "Secr3t!")
			assert.NotContains(t, err.Error(), tt.salt)
		})
	}
}

func TestNewHasher_RejectsBadParams(t *testing.T) {
	t.Parallel()

	_, err := NewHasher(Params{})
	assert.ErrorIs(t, err, common.ErrConfiguration)

	p := DefaultParams()
	p.SaltLen = 4
	_, err = NewHasher(p)
	assert.ErrorIs(t, err, common.ErrConfiguration)

	_, err = NewHasher(DefaultParams())
	assert.NoError(t, err)
}

func TestVerify(t *testing.T) {
	t.Parallel()
	h := testHasher(t)

	d, err := h.Hash("Secr3t!", "")
	require.NoError(t, err)

	ok, err := h.Verify("Secr3t!", d.Salt, d.Hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", d.Salt, d.Hash)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = h.Verify("Secr3t!", h.NewSalt(), d.Hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_UsesParamsStoredWithHash(t *testing.T) {
	t.Parallel()

	old := Params{Time: 1, MemoryKiB: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}
	tests := []struct {
		name string
		next Params
	}{
		{"time", Params{Time: 2, MemoryKiB: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}},
		{"memory", Params{Time: 1, MemoryKiB: 2048, Threads: 1, KeyLen: 32, SaltLen: 16}},
		{"threads", Params{Time: 1, MemoryKiB: 1024, Threads: 2, KeyLen: 32, SaltLen: 16}},
		{"key length", Params{Time: 1, MemoryKiB: 1024, Threads: 1, KeyLen: 64, SaltLen: 16}},
		{"salt length", Params{Time: 1, MemoryKiB: 1024, Threads: 1, KeyLen: 32, SaltLen: 32}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, err := NewHasher(old)
			require.NoError(t, err)
			after, err := NewHasher(tt.next)
			require.NoError(t, err)

			d, err := before.Hash("Secr3t!", "")
			require.NoError(t, err)

			ok, err := after.Verify("Secr3t!", d.Salt, d.Hash)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = after.Verify("wrong", d.Salt, d.Hash)
			require.NoError(t, err)
			assert.False(t, ok)

			fresh, err := after.Hash("Secr3t!", "")
			require.NoError(t, err)
			ok, err = before.Verify("Secr3t!", fresh.Salt, fresh.Hash)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	t.Parallel()
	h := testHasher(t)
	salt := h.NewSalt()

	for _, encoded := range []string{
		"",
		"c2VjcmV0aGFzaHZhbHVlMTIzNDU2Nzg5MA",
		"$argon2i$v=19$m=1024,t=1,p=1$c2VjcmV0aGFzaA",
		"$argon2id$v=16$m=1024,t=1,p=1$c2VjcmV0aGFzaA",
		"$argon2id$v=19$m=0,t=1,p=1$c2VjcmV0aGFzaA",
		"$argon2id$v=19$m=1024,t=1$c2VjcmV0aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!",
		"$argon2id$v=19$m=1024,t=1,p=1$",
	} {
		_, err := h.Verify("Secr3t!", salt, encoded)
		assert.ErrorIs(t, err, common.ErrInvalidInput, encoded)
	}

	d, err := h.Hash("Secr3t!", salt)
	require.NoError(t, err)
	_, err = h.Verify("Secr3t!", "!!!", d.Hash)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	_, err = h.Verify("", salt, d.Hash)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
