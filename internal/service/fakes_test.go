package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/CarolGonzaga/projeto-audiomante/internal/domain"
)

// In-memory repositories enforcing the same uniqueness rules as the
// Postgres schema, so conflict paths can be exercised without a database.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return fmt.Errorf("email or username taken: %w", domain.ErrConflict)
		}
	}

	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
}

func (r *fakeUserRepo) UpsertByEmail(_ context.Context, email, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	for _, u := range r.users {
		if u.Username == username {
			return nil, fmt.Errorf("username taken: %w", domain.ErrConflict)
		}
	}

	now := time.Now()
	user := &domain.User{
		ID:        uuid.New(),
		Email:     email,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.users[user.ID] = user

	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type fakeBookRepo struct {
	mu    sync.Mutex
	books map[string]*domain.Book
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[string]*domain.Book)}
}

func (r *fakeBookRepo) UpsertByGoogleID(_ context.Context, book *domain.Book) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stored, ok := r.books[book.GoogleID]; ok {
		cp := *stored
		return &cp, nil
	}

	cp := *book
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	r.books[cp.GoogleID] = &cp

	out := cp
	return &out, nil
}

func (r *fakeBookRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.books)
}

type fakeShelfRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*domain.BookshelfEntry
}

func newFakeShelfRepo() *fakeShelfRepo {
	return &fakeShelfRepo{entries: make(map[uuid.UUID]*domain.BookshelfEntry)}
}

func (r *fakeShelfRepo) Create(_ context.Context, entry *domain.BookshelfEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.UserID == entry.UserID && e.BookID == entry.BookID {
			return fmt.Errorf("book already on shelf: %w", domain.ErrConflict)
		}
	}

	cp := *entry
	r.entries[entry.ID] = &cp
	return nil
}

func (r *fakeShelfRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.ShelfItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[id]; ok {
		return &domain.ShelfItem{BookshelfEntry: *e}, nil
	}
	return nil, fmt.Errorf("bookshelf entry %s: %w", id, domain.ErrNotFound)
}

func (r *fakeShelfRepo) ListByUser(_ context.Context, userID uuid.UUID, status domain.ReadingStatus) ([]*domain.ShelfItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := []*domain.ShelfItem{}
	for _, e := range r.entries {
		if e.UserID != userID {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		items = append(items, &domain.ShelfItem{BookshelfEntry: *e})
	}
	return items, nil
}

func (r *fakeShelfRepo) Update(_ context.Context, entry *domain.BookshelfEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.entries[entry.ID]
	if !ok || stored.UserID != entry.UserID {
		return fmt.Errorf("bookshelf entry %s: %w", entry.ID, domain.ErrNotFound)
	}

	cp := *entry
	r.entries[entry.ID] = &cp
	return nil
}

func (r *fakeShelfRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.entries[id]
	if !ok || stored.UserID != userID {
		return fmt.Errorf("bookshelf entry %s: %w", id, domain.ErrNotFound)
	}

	delete(r.entries, id)
	return nil
}
