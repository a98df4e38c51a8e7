package auth

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminVerifier validates the bearer tokens used by the admin endpoints and
// the bot that records manual contributions. Tokens are HS256-signed with a
// shared secret; the subject identifies who performed the action and ends up
// in the recorded_by column.
type AdminVerifier struct {
	secret []byte
}

// NewAdminVerifier creates a verifier from the ADMIN_JWT_SECRET environment
// variable. An empty secret is allowed for local development but every
// validation will fail until one is set.
func NewAdminVerifier() *AdminVerifier {
	secret := os.Getenv("ADMIN_JWT_SECRET")
	if secret == "" {
		log.Println("⚠️  ADMIN_JWT_SECRET not set; admin endpoints will reject all tokens")
	}
	return &AdminVerifier{secret: []byte(secret)}
}

// IssueToken signs a token for the given subject. Used by the CLI tools and
// tests; production tokens are minted by the operations tooling.
func (v *AdminVerifier) IssueToken(subject string, ttl time.Duration) (string, error) {
	if len(v.secret) == 0 {
		return "", fmt.Errorf("no signing secret configured")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString(v.secret)
}

// ExtractSubject verifies the token and returns its subject.
func (v *AdminVerifier) ExtractSubject(tokenString string) (string, error) {
	if len(v.secret) == 0 {
		return "", fmt.Errorf("no signing secret configured")
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to verify token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("no subject claim in token")
	}
	return claims.Subject, nil
}

// ValidateToken is a middleware-friendly wrapper around ExtractSubject.
func (v *AdminVerifier) ValidateToken(authHeader string) (string, bool) {
	if authHeader == "" {
		return "", false
	}
	subject, err := v.ExtractSubject(authHeader)
	if err != nil {
		log.Printf("JWT validation error: %v", err)
		return "", false
	}
	return subject, true
}
