package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdminTokens(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "test-secret")
	verifier := NewAdminVerifier()

	t.Run("round trip", func(t *testing.T) {
		token, err := verifier.IssueToken("admin-1", time.Hour)
		if err != nil {
			t.Fatalf("IssueToken failed: %v", err)
		}

		subject, err := verifier.ExtractSubject(token)
		assert.NoError(t, err)
		assert.Equal(t, "admin-1", subject)

		// Bearer prefix is tolerated
		subject, ok := verifier.ValidateToken("Bearer " + token)
		assert.True(t, ok)
		assert.Equal(t, "admin-1", subject)
	})

	t.Run("rejects tokens signed with another secret", func(t *testing.T) {
		t.Setenv("ADMIN_JWT_SECRET", "other-secret")
		other := NewAdminVerifier()
		token, err := other.IssueToken("admin-1", time.Hour)
		if err != nil {
			t.Fatalf("IssueToken failed: %v", err)
		}

		_, err = verifier.ExtractSubject(token)
		assert.Error(t, err)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		token, err := verifier.IssueToken("admin-1", -time.Minute)
		if err != nil {
			t.Fatalf("IssueToken failed: %v", err)
		}

		_, ok := verifier.ValidateToken(token)
		assert.False(t, ok)
	})

	t.Run("rejects empty header", func(t *testing.T) {
		_, ok := verifier.ValidateToken("")
		assert.False(t, ok)
	})
}

func TestVerifierWithoutSecret(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "")
	verifier := NewAdminVerifier()

	_, err := verifier.IssueToken("admin-1", time.Hour)
	assert.Error(t, err)

	_, ok := verifier.ValidateToken("Bearer whatever")
	assert.False(t, ok)
}
