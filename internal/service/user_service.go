package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CarolGonzaga/projeto-audiomante/internal/domain"
	"github.com/CarolGonzaga/projeto-audiomante/internal/repository"
	"github.com/CarolGonzaga/projeto-audiomante/pkg/hash"
)

type UserService struct {
	userRepo repository.UserRepository
	log      *zap.SugaredLogger
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=6"`
}

func NewUserService(userRepo repository.UserRepository, log *zap.SugaredLogger) *UserService {
	return &UserService{
		userRepo: userRepo,
		log:      log,
	}
}

// Register creates a local account. Uniqueness of email and username is
// decided by the database constraints alone; a violation comes back as
// domain.ErrConflict from the single INSERT.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("email, username and password are required: %w", domain.ErrValidation)
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infow("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// AuthenticateLocal verifies email and password against the stored hash.
func (s *UserService) AuthenticateLocal(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !hash.VerifyPassword(password, user.PasswordHash) {
		return nil, fmt.Errorf("password mismatch for %s: %w", email, domain.ErrInvalidCredentials)
	}

	return user, nil
}

// ResolveOrProvisionFromIdentity maps a Google identity assertion to an
// account, creating a password-less one on first login. The write is a
// single atomic upsert keyed by email, so concurrent callbacks with the
// same email resolve to the same account.
func (s *UserService) ResolveOrProvisionFromIdentity(ctx context.Context, email, displayName string) (*domain.User, error) {
	if email == "" {
		return nil, fmt.Errorf("identity assertion without email: %w", domain.ErrValidation)
	}

	user, err := s.userRepo.UpsertByEmail(ctx, email, deriveUsername(displayName))
	if err != nil {
		return nil, err
	}

	s.log.Infow("identity resolved", "user_id", user.ID, "email", email)
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// deriveUsername builds a username from a display name: whitespace
// stripped, lower-cased, disambiguated with a random numeric suffix. The
// suffix keeps concurrent provisioning of same-named users from colliding
// on the username constraint.
func deriveUsername(displayName string) string {
	base := strings.ToLower(strings.Join(strings.Fields(displayName), ""))
	if base == "" {
		base = "leitor"
	}
	return fmt.Sprintf("%s%04d", base, rand.IntN(10000))
}
