package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"typical password", "walkTall2026!", nil},
		{"exactly minimum length", "12345678", nil},
		{"exactly bcrypt limit", strings.Repeat("k", 72), nil},
		{"empty", "", ErrPasswordEmpty},
		{"one under minimum", "1234567", ErrPasswordTooShort},
		{"one over bcrypt limit", strings.Repeat("k", 73), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)
			assert.True(t, strings.HasPrefix(hash, "$2"), "expected a bcrypt hash, got %q", hash)
		})
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("repeatedPassword9")
	require.NoError(t, err)
	second, err := HashPassword("repeatedPassword9")
	require.NoError(t, err)

	// bcrypt salts each hash, so re-hashing must not produce the same output.
	assert.NotEqual(t, first, second)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("balanceBoard88")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("balanceBoard88", hash))
	assert.False(t, VerifyPassword("BALANCEBOARD88", hash), "verification is case sensitive")
	assert.False(t, VerifyPassword("balanceBoard89", hash))
	assert.False(t, VerifyPassword("", hash))
	assert.False(t, VerifyPassword("balanceBoard88", ""))
	assert.False(t, VerifyPassword("", ""))
	assert.False(t, VerifyPassword("balanceBoard88", "not-a-bcrypt-hash"))
}

func TestHashVerifyRoundTrip(t *testing.T) {
	passwords := []string{
		"gaitLab#2026",
		"P@tient!Portal",
		strings.Repeat("z", 72),
	}

	for _, password := range passwords {
		hash, err := HashPassword(password)
		require.NoError(t, err)
		assert.True(t, VerifyPassword(password, hash))
		assert.False(t, VerifyPassword(password+"x", hash))
	}
}

func BenchmarkHashPassword(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = HashPassword("benchmarkPassword123")
	}
}
