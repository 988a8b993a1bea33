// Package session keeps the binding between a browser and a backend token.
package session

import (
	"context"      // Store operations
	"encoding/hex" // Key encoding
	"errors"       // Sentinel errors

	"golang.org/x/crypto/blake2b" // Session id hashing

	"storefront/internal/domain"
)

// ErrNotFound means no live record exists for the session id
var ErrNotFound = errors.New("session: not found")

// Store persists session records outside process memory
type Store interface {
	Load(ctx context.Context, id string) (*domain.SessionRecord, error)
	Save(ctx context.Context, rec *domain.SessionRecord) error
	Delete(ctx context.Context, id string) error
}

// HashID maps a cookie value to the id a record is stored under,
// so a dump of the store cannot be replayed as cookies.
func HashID(cookieValue string) string {
	sum := blake2b.Sum256([]byte(cookieValue))
	return hex.EncodeToString(sum[:])
}
