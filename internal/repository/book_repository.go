package repository

import (
	"context"

	"github.com/CarolGonzaga/projeto-audiomante/internal/domain"
)

type BookRepository interface {
	// UpsertByGoogleID inserts the book when its volume id is new and
	// returns the existing catalog row otherwise.
	UpsertByGoogleID(ctx context.Context, book *domain.Book) (*domain.Book, error)
}
