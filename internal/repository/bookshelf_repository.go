package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/CarolGonzaga/projeto-audiomante/internal/domain"
)

type BookshelfRepository interface {
	// Create inserts a shelf entry. A duplicate (user, book) pair
	// surfaces as domain.ErrConflict.
	Create(ctx context.Context, entry *domain.BookshelfEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ShelfItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status domain.ReadingStatus) ([]*domain.ShelfItem, error)
	Update(ctx context.Context, entry *domain.BookshelfEntry) error
	// Delete removes an entry scoped to its owner; a miss is
	// domain.ErrNotFound.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
