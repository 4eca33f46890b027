package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/CarolGonzaga/projeto-audiomante/internal/domain"
	"github.com/CarolGonzaga/projeto-audiomante/internal/repository"
)

type bookRepository struct {
	db *sqlx.DB
}

// NewBookRepository creates a new PostgreSQL book repository
func NewBookRepository(db *sqlx.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

// UpsertByGoogleID inserts the book when the volume id is new; on conflict
// the stored row wins and is returned untouched apart from RETURNING.
func (r *bookRepository) UpsertByGoogleID(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	query := `
		INSERT INTO books (id, google_id, title, author, cover_url, description, page_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (google_id) DO UPDATE SET google_id = EXCLUDED.google_id
		RETURNING id, google_id, title, author, cover_url, description, page_count, created_at`

	var stored domain.Book
	err := r.db.GetContext(ctx, &stored, query,
		uuid.New(), book.GoogleID, book.Title, book.Author,
		book.CoverURL, book.Description, book.PageCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert book %s: %w", book.GoogleID, err)
	}

	return &stored, nil
}
