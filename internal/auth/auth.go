// Package auth turns bearer tokens into the identity the rest of the service works with.
package auth

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Principal is the authenticated caller.
type Principal struct {
	UserID  string
	Email   string
	Name    string
	IsAdmin bool
}

// Verifier validates an opaque token issued by the identity provider.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

// isAdminClaim accepts either admin: true or role: "admin".
func isAdminClaim(admin any, role any) bool {
	if b, ok := admin.(bool); ok && b {
		return true
	}
	if s, ok := role.(string); ok && s == "admin" {
		return true
	}
	return false
}
