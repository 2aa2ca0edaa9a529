package passhash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	encoded, err := Hash("bobpass")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))
	assert.NotContains(t, encoded, "bobpass")

	require.NoError(t, Verify("bobpass", encoded))
	assert.ErrorIs(t, Verify("wrong", encoded), ErrMismatch)
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("bobpass")
	require.NoError(t, err)
	second, err := Hash("bobpass")
	require.NoError(t, err)

	// Same password, fresh salt, different digest.
	assert.NotEqual(t, first, second)
	require.NoError(t, Verify("bobpass", first))
	require.NoError(t, Verify("bobpass", second))
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"wrong algorithm", "$scrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=65536,t=3,p=2"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify("bobpass", tt.encoded)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrMismatch)
		})
	}
}
