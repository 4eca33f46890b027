package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/CarolGonzaga/projeto-audiomante/internal/domain"
)

type UserRepository interface {
	// Create inserts a new user. A duplicate email or username surfaces
	// as domain.ErrConflict; the unique constraints are the sole arbiter.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpsertByEmail performs a single conditional write: it inserts the
	// user when the email is absent and returns the existing row
	// otherwise. Concurrent calls with the same email resolve to one row.
	UpsertByEmail(ctx context.Context, email, username string) (*domain.User, error)
}
