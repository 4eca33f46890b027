package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CarolGonzaga/projeto-audiomante/internal/domain"
	"github.com/CarolGonzaga/projeto-audiomante/internal/service"
	"github.com/CarolGonzaga/projeto-audiomante/pkg/validator"
)

type BookshelfHandler struct {
	shelfService *service.BookshelfService
	validator    *validator.Validator
	log          *zap.SugaredLogger
}

func NewBookshelfHandler(
	shelfService *service.BookshelfService,
	validator *validator.Validator,
	log *zap.SugaredLogger,
) *BookshelfHandler {
	return &BookshelfHandler{
		shelfService: shelfService,
		validator:    validator,
		log:          log,
	}
}

// Add puts a book on the caller's shelf
// POST /bookshelves (protected)
func (h *BookshelfHandler) Add(c *fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Token não fornecido ou mal formatado.")
	}

	var req service.AddBookRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}

	if err := h.validator.Validate(req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Dados incompletos para adicionar o livro.")
	}

	entry, err := h.shelfService.Add(c.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return fail(c, fiber.StatusBadRequest, "Dados incompletos para adicionar o livro.")
		case errors.Is(err, domain.ErrConflict):
			return fail(c, fiber.StatusConflict, "Este livro já está na sua estante.")
		default:
			h.log.Errorw("shelf add failed", "error", err, "user_id", userID)
			return fail(c, fiber.StatusInternalServerError, "Ocorreu um erro ao adicionar o livro à estante.")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// List returns the caller's shelf, optionally filtered by ?status=
// GET /bookshelves (protected)
func (h *BookshelfHandler) List(c *fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Token não fornecido ou mal formatado.")
	}

	items, err := h.shelfService.List(c.Context(), userID, c.Query("status"))
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return fail(c, fiber.StatusBadRequest, "Status de leitura inválido.")
		}
		h.log.Errorw("shelf list failed", "error", err, "user_id", userID)
		return fail(c, fiber.StatusInternalServerError, "Ocorreu um erro ao buscar a estante.")
	}

	return c.Status(fiber.StatusOK).JSON(items)
}

// Get returns a single shelf entry
// GET /bookshelves/:id (protected)
func (h *BookshelfHandler) Get(c *fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Token não fornecido ou mal formatado.")
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Identificador inválido.")
	}

	item, err := h.shelfService.Get(c.Context(), userID, entryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Livro não encontrado na estante.")
		}
		h.log.Errorw("shelf get failed", "error", err, "user_id", userID)
		return fail(c, fiber.StatusInternalServerError, "Ocorreu um erro ao buscar a estante.")
	}

	return c.Status(fiber.StatusOK).JSON(item)
}

// Update changes status, rating or review of an entry
// PATCH /bookshelves/:id (protected)
func (h *BookshelfHandler) Update(c *fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Token não fornecido ou mal formatado.")
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Identificador inválido.")
	}

	var req service.UpdateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}

	if err := h.validator.Validate(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	entry, err := h.shelfService.Update(c.Context(), userID, entryID, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return fail(c, fiber.StatusNotFound, "Livro não encontrado na estante.")
		case errors.Is(err, domain.ErrValidation):
			return fail(c, fiber.StatusBadRequest, "Dados inválidos para atualizar o livro.")
		default:
			h.log.Errorw("shelf update failed", "error", err, "user_id", userID)
			return fail(c, fiber.StatusInternalServerError, "Ocorreu um erro ao atualizar a estante.")
		}
	}

	return c.Status(fiber.StatusOK).JSON(entry)
}

// Remove deletes an entry from the caller's shelf
// DELETE /bookshelves/:id (protected)
func (h *BookshelfHandler) Remove(c *fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Token não fornecido ou mal formatado.")
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Identificador inválido.")
	}

	if err := h.shelfService.Remove(c.Context(), userID, entryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Livro não encontrado na estante.")
		}
		h.log.Errorw("shelf remove failed", "error", err, "user_id", userID)
		return fail(c, fiber.StatusInternalServerError, "Ocorreu um erro ao remover o livro da estante.")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
