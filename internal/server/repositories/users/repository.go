// Package users declares the persistence contract for user identity
// records. It holds no domain logic.
package users

import (
	"context"

	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/models"
)

// Repository defines lookup and insertion of user records. Emails are
// normalized (lowercased) by the caller before they reach the store.
type Repository interface {
	// Create inserts the user and returns it with the generated id.
	// A duplicate email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email, or
	// common.ErrorNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
