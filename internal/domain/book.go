package domain

import (
	"time"

	"github.com/google/uuid"
)

// Book is a catalog row keyed by its Google Books volume id. Rows are
// shared between users and upserted on first shelf add.
type Book struct {
	ID          uuid.UUID `json:"id" db:"id"`
	GoogleID    string    `json:"google_id" db:"google_id"`
	Title       string    `json:"title" db:"title"`
	Author      string    `json:"author" db:"author"`
	CoverURL    *string   `json:"cover_url" db:"cover_url"`
	Description *string   `json:"description" db:"description"`
	PageCount   *int      `json:"page_count" db:"page_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
