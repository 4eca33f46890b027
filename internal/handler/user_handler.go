package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/CarolGonzaga/projeto-audiomante/internal/domain"
	"github.com/CarolGonzaga/projeto-audiomante/internal/service"
	"github.com/CarolGonzaga/projeto-audiomante/pkg/token"
	"github.com/CarolGonzaga/projeto-audiomante/pkg/validator"
)

type UserHandler struct {
	userService *service.UserService
	tokens      *token.Service
	validator   *validator.Validator
	log         *zap.SugaredLogger
}

func NewUserHandler(
	userService *service.UserService,
	tokens *token.Service,
	validator *validator.Validator,
	log *zap.SugaredLogger,
) *UserHandler {
	return &UserHandler{
		userService: userService,
		tokens:      tokens,
		validator:   validator,
		log:         log,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup handles account creation
// POST /users/signup
func (h *UserHandler) Signup(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}

	if err := h.validator.Validate(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Register(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return fail(c, fiber.StatusBadRequest, "Todos os campos são obrigatórios.")
		case errors.Is(err, domain.ErrConflict):
			return fail(c, fiber.StatusConflict, "O e-mail ou nome de usuário já está em uso.")
		default:
			h.log.Errorw("signup failed", "error", err)
			return fail(c, fiber.StatusInternalServerError, "Ocorreu um erro ao criar o usuário.")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login verifies local credentials and returns a session token
// POST /users/login
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}

	if err := h.validator.Validate(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.userService.AuthenticateLocal(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return fail(c, fiber.StatusNotFound, "Usuário não encontrado.")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return fail(c, fiber.StatusUnauthorized, "Senha incorreta.")
		default:
			h.log.Errorw("login failed", "error", err)
			return fail(c, fiber.StatusInternalServerError, "Ocorreu um erro ao fazer login.")
		}
	}

	tok, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Errorw("token issuance failed", "error", err, "user_id", user.ID)
		return fail(c, fiber.StatusInternalServerError, "Ocorreu um erro ao fazer login.")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"token": tok})
}

// GetMe returns the authenticated user's profile
// GET /users/me (protected)
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Token não fornecido ou mal formatado.")
	}

	user, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Usuário não encontrado.")
		}
		h.log.Errorw("profile lookup failed", "error", err, "user_id", userID)
		return fail(c, fiber.StatusInternalServerError, "Ocorreu um erro ao buscar o usuário.")
	}

	return c.Status(fiber.StatusOK).JSON(user)
}
