package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CarolGonzaga/projeto-audiomante/internal/domain"
	"github.com/CarolGonzaga/projeto-audiomante/internal/repository"
)

type BookshelfService struct {
	bookRepo  repository.BookRepository
	shelfRepo repository.BookshelfRepository
	log       *zap.SugaredLogger
}

type AddBookRequest struct {
	GoogleID    string  `json:"googleId" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Author      string  `json:"author" validate:"required"`
	CoverURL    *string `json:"coverUrl"`
	Description *string `json:"description"`
	PageCount   *int    `json:"pageCount"`
	Status      string  `json:"status" validate:"required,oneof=QUERO_LER LENDO LIDO"`
}

type UpdateEntryRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=QUERO_LER LENDO LIDO"`
	Rating *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Review *string `json:"review"`
}

func NewBookshelfService(
	bookRepo repository.BookRepository,
	shelfRepo repository.BookshelfRepository,
	log *zap.SugaredLogger,
) *BookshelfService {
	return &BookshelfService{
		bookRepo:  bookRepo,
		shelfRepo: shelfRepo,
		log:       log,
	}
}

// Add upserts the book into the shared catalog and creates the user's
// shelf entry. Adding the same volume twice surfaces as
// domain.ErrConflict from the (user, book) constraint.
func (s *BookshelfService) Add(ctx context.Context, userID uuid.UUID, req AddBookRequest) (*domain.BookshelfEntry, error) {
	if req.GoogleID == "" || req.Title == "" || req.Author == "" || req.Status == "" {
		return nil, fmt.Errorf("incomplete book data: %w", domain.ErrValidation)
	}

	status := domain.ReadingStatus(req.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("unknown reading status %q: %w", req.Status, domain.ErrValidation)
	}

	book, err := s.bookRepo.UpsertByGoogleID(ctx, &domain.Book{
		GoogleID:    req.GoogleID,
		Title:       req.Title,
		Author:      req.Author,
		CoverURL:    req.CoverURL,
		Description: req.Description,
		PageCount:   req.PageCount,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry := &domain.BookshelfEntry{
		ID:        uuid.New(),
		UserID:    userID,
		BookID:    book.ID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.shelfRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.log.Infow("book added to shelf", "user_id", userID, "google_id", req.GoogleID)
	return entry, nil
}

// List returns the user's shelf, optionally filtered by status. An empty
// filter returns everything.
func (s *BookshelfService) List(ctx context.Context, userID uuid.UUID, status string) ([]*domain.ShelfItem, error) {
	filter := domain.ReadingStatus(status)
	if status != "" && !filter.Valid() {
		return nil, fmt.Errorf("unknown reading status %q: %w", status, domain.ErrValidation)
	}

	return s.shelfRepo.ListByUser(ctx, userID, filter)
}

// Get returns a single entry, owner-checked.
func (s *BookshelfService) Get(ctx context.Context, userID, entryID uuid.UUID) (*domain.ShelfItem, error) {
	item, err := s.shelfRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if item.UserID != userID {
		return nil, fmt.Errorf("bookshelf entry %s: %w", entryID, domain.ErrNotFound)
	}

	return item, nil
}

// Update applies status, rating and review changes to an entry the user
// owns. Unset fields keep their stored values.
func (s *BookshelfService) Update(ctx context.Context, userID, entryID uuid.UUID, req UpdateEntryRequest) (*domain.BookshelfEntry, error) {
	item, err := s.Get(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	entry := item.BookshelfEntry
	if req.Status != nil {
		status := domain.ReadingStatus(*req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("unknown reading status %q: %w", *req.Status, domain.ErrValidation)
		}
		entry.Status = status
	}
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, fmt.Errorf("rating out of range: %w", domain.ErrValidation)
		}
		entry.Rating = req.Rating
	}
	if req.Review != nil {
		entry.Review = req.Review
	}

	if err := s.shelfRepo.Update(ctx, &entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

// Remove deletes an entry scoped to its owner.
func (s *BookshelfService) Remove(ctx context.Context, userID, entryID uuid.UUID) error {
	return s.shelfRepo.Delete(ctx, entryID, userID)
}
