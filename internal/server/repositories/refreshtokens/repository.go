// Package refreshtokens declares the repository contract for server-tracked
// refresh tokens and its PostgreSQL implementation.
package refreshtokens

import (
	"context"
	"time"

	"github.com/gamecatalog/authservice/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking
// refresh tokens. At most one token row exists per user; Upsert replaces
// any prior row for the same user in a single atomic write.
type Repository interface {
	// Upsert stores a refresh token for userID with an expiry of
	// now+validity, replacing the user's previous token row if one exists.
	// The write is atomic with respect to concurrent upserts for the same
	// user. Returns the stored record.
	Upsert(ctx context.Context, userID string, token string, validity time.Duration) (*models.RefreshToken, error)

	// Find looks a refresh token up by its opaque token string.
	// Implementations return common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// FindByUser returns the user's current refresh token row, or
	// common.ErrorNotFound when none exists.
	FindByUser(ctx context.Context, userID string) (*models.RefreshToken, error)

	// Delete removes a refresh token by its token string. Deleting a
	// non-existent token is not an error.
	Delete(ctx context.Context, token string) error
}
