package identity

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"github.com/amjadhq/commission/models"
)

// UserHeader carries the caller's chosen roster name on every
// identity-dependent request.
const UserHeader = "X-User-Id"

// AdminHeader carries the shared admin key for moderation operations.
const AdminHeader = "X-Admin-Key"

var (
	ErrNoIdentity      = errors.New("no identity selected")
	ErrUnknownUser     = errors.New("name is not on the roster")
	ErrInvalidAdminKey = errors.New("invalid admin key")
)

// FromRequest resolves the current identity from the request header.
// An absent or off-roster name is a precondition failure: callers must
// answer with identity_required instead of touching the store.
func FromRequest(r *http.Request) (string, error) {
	name := r.Header.Get(UserHeader)
	if name == "" {
		return "", ErrNoIdentity
	}
	if !models.IsRosterMember(name) {
		return "", ErrUnknownUser
	}
	return name, nil
}

// ValidateAdminKey compares the request's admin key against the
// configured secret in constant time.
func ValidateAdminKey(r *http.Request, secret string) error {
	key := r.Header.Get(AdminHeader)
	if secret == "" || !hmac.Equal([]byte(key), []byte(secret)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateID creates a random hex ID of the specified byte length.
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}
