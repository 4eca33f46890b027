package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/CarolGonzaga/projeto-audiomante/internal/domain"
	"github.com/CarolGonzaga/projeto-audiomante/internal/repository"
)

type bookshelfRepository struct {
	db *sqlx.DB
}

// NewBookshelfRepository creates a new PostgreSQL bookshelf repository
func NewBookshelfRepository(db *sqlx.DB) repository.BookshelfRepository {
	return &bookshelfRepository{db: db}
}

const shelfItemColumns = `
	e.id, e.user_id, e.book_id, e.status, e.rating, e.review, e.created_at, e.updated_at,
	b.id AS "book.id", b.google_id AS "book.google_id", b.title AS "book.title",
	b.author AS "book.author", b.cover_url AS "book.cover_url",
	b.description AS "book.description", b.page_count AS "book.page_count",
	b.created_at AS "book.created_at"`

// Create inserts a shelf entry for a user
func (r *bookshelfRepository) Create(ctx context.Context, entry *domain.BookshelfEntry) error {
	query := `
		INSERT INTO bookshelf_entries (id, user_id, book_id, status, rating, review, created_at, updated_at)
		VALUES (:id, :user_id, :book_id, :status, :rating, :review, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("book already on shelf: %w", domain.ErrConflict)
		}
		return fmt.Errorf("failed to create bookshelf entry: %w", err)
	}

	return nil
}

// GetByID retrieves a single entry with its book joined in
func (r *bookshelfRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ShelfItem, error) {
	query := `
		SELECT ` + shelfItemColumns + `
		FROM bookshelf_entries e
		JOIN books b ON b.id = e.book_id
		WHERE e.id = $1`

	var item domain.ShelfItem
	err := r.db.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("bookshelf entry %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get bookshelf entry: %w", err)
	}

	return &item, nil
}

// ListByUser retrieves a user's shelf, newest first, optionally filtered
// by reading status
func (r *bookshelfRepository) ListByUser(ctx context.Context, userID uuid.UUID, status domain.ReadingStatus) ([]*domain.ShelfItem, error) {
	query := `
		SELECT ` + shelfItemColumns + `
		FROM bookshelf_entries e
		JOIN books b ON b.id = e.book_id
		WHERE e.user_id = $1`

	args := []interface{}{userID}
	if status != "" {
		query += ` AND e.status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY e.created_at DESC`

	items := []*domain.ShelfItem{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list bookshelf entries: %w", err)
	}

	return items, nil
}

// Update persists status, rating and review changes
func (r *bookshelfRepository) Update(ctx context.Context, entry *domain.BookshelfEntry) error {
	entry.UpdatedAt = time.Now()

	query := `
		UPDATE bookshelf_entries
		SET status = :status,
			rating = :rating,
			review = :review,
			updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id`

	result, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return fmt.Errorf("failed to update bookshelf entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("bookshelf entry %s: %w", entry.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an entry, scoped to its owner
func (r *bookshelfRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM bookshelf_entries WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete bookshelf entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("bookshelf entry %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
