package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("12345678")
	require.NoError(t, err)
	second, err := h.Hash("12345678")
	require.NoError(t, err)

	assert.NotEqual(t, "12345678", first)
	assert.NotEqual(t, first, second, "each hash must use a fresh salt")
	assert.True(t, h.Verify("12345678", first))
	assert.True(t, h.Verify("12345678", second))
}

func TestBcryptHasher_Verify(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	hashed, err := h.Hash("correct-horse")
	require.NoError(t, err)

	tests := []struct {
		name      string
		plaintext string
		hash      string
		want      bool
	}{
		{name: "match", plaintext: "correct-horse", hash: hashed, want: true},
		{name: "wrong password", plaintext: "wrong", hash: hashed, want: false},
		{name: "empty password", plaintext: "", hash: hashed, want: false},
		{name: "malformed hash", plaintext: "correct-horse", hash: "not-a-hash", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Verify(tt.plaintext, tt.hash))
		})
	}
}

func TestNewBcryptHasher_DefaultCost(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(0)
	hashed, err := h.Hash("12345678")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}
