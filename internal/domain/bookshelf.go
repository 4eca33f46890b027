package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReadingStatus uses the values the web client sends.
type ReadingStatus string

const (
	StatusWantToRead ReadingStatus = "QUERO_LER"
	StatusReading    ReadingStatus = "LENDO"
	StatusRead       ReadingStatus = "LIDO"
)

func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusWantToRead, StatusReading, StatusRead:
		return true
	}
	return false
}

// BookshelfEntry links a user to a catalog book. One entry per
// (user, book) pair, enforced by the database.
type BookshelfEntry struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	UserID    uuid.UUID     `json:"user_id" db:"user_id"`
	BookID    uuid.UUID     `json:"book_id" db:"book_id"`
	Status    ReadingStatus `json:"status" db:"status"`
	Rating    *int          `json:"rating" db:"rating"`
	Review    *string       `json:"review" db:"review"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// ShelfItem is an entry with its book joined in, as returned by list and
// detail queries.
type ShelfItem struct {
	BookshelfEntry
	Book Book `json:"book" db:"book"`
}
