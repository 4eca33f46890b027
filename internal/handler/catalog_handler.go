package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/CarolGonzaga/projeto-audiomante/internal/domain"
	"github.com/CarolGonzaga/projeto-audiomante/internal/service"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
	log            *zap.SugaredLogger
}

func NewCatalogHandler(catalogService *service.CatalogService, log *zap.SugaredLogger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		log:            log,
	}
}

// Search proxies the Google Books volumes endpoint
// GET /search?q=
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return fail(c, fiber.StatusBadRequest, "O termo de busca (q) é obrigatório.")
	}

	payload, err := h.catalogService.Search(c.Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return fail(c, fiber.StatusBadRequest, "O termo de busca (q) é obrigatório.")
		}
		h.log.Errorw("book search failed", "error", err, "query", query)
		return fail(c, fiber.StatusInternalServerError, "Erro ao se comunicar com a Google Books API.")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(payload)
}

// Suggestions serves the curated home-page picks
// GET /suggestions
func (h *CatalogHandler) Suggestions(c *fiber.Ctx) error {
	suggestions, err := h.catalogService.Suggestions(c.Context())
	if err != nil {
		h.log.Errorw("suggestions fetch failed", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Erro ao buscar sugestões.")
	}

	return c.Status(fiber.StatusOK).JSON(suggestions)
}
