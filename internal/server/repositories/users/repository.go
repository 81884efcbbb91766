// Package users declares the repository contract for user accounts and its
// PostgreSQL implementation.
package users

import (
	"context"

	"github.com/gamecatalog/authservice/internal/server/models"
)

// Repository defines persistence operations for user accounts.
type Repository interface {
	// Create inserts a new user and returns it with the DB-assigned ID and
	// creation timestamp filled in.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail looks a user up by the exact (case-sensitive) email.
	// Implementations return common.ErrorNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID looks a user up by primary key.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// ExistsByEmail reports whether a user with the email is registered.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
