package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/CarolGonzaga/projeto-audiomante/internal/domain"
	"github.com/CarolGonzaga/projeto-audiomante/internal/handler/middleware"
	"github.com/CarolGonzaga/projeto-audiomante/internal/service"
	"github.com/CarolGonzaga/projeto-audiomante/pkg/token"
	"github.com/CarolGonzaga/projeto-audiomante/pkg/validator"
)

// memUserRepo is an in-memory UserRepository with the same uniqueness
// rules as the schema, enough to run the handlers end to end.
type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
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

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
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

func (r *memUserRepo) UpsertByEmail(_ context.Context, email, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}

	now := time.Now()
	user := &domain.User{ID: uuid.New(), Email: email, Username: username, CreatedAt: now, UpdatedAt: now}
	r.users[user.ID] = user

	cp := *user
	return &cp, nil
}

func newUserApp(t *testing.T) (*fiber.App, *memUserRepo, *token.Service) {
	t.Helper()

	repo := newMemUserRepo()
	sugar := zap.NewNop().Sugar()
	tokens := token.NewService("test-secret", 7*24*time.Hour)
	userService := service.NewUserService(repo, sugar)
	userHandler := NewUserHandler(userService, tokens, validator.NewValidator(), sugar)

	app := fiber.New()
	app.Post("/users/signup", userHandler.Signup)
	app.Post("/users/login", userHandler.Login)
	app.Get("/users/me", middleware.Auth(tokens), userHandler.GetMe)

	return app, repo, tokens
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestSignup(t *testing.T) {
	t.Parallel()

	app, repo, _ := newUserApp(t)

	resp := postJSON(t, app, "/users/signup",
		`{"email":"a@x.com","username":"ana","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "a@x.com", body["email"])
	require.NotContains(t, body, "password_hash")
	require.NotContains(t, body, "password")

	// The stored credential is a hash, never the raw password.
	stored, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", stored.PasswordHash)
}

func TestSignup_MissingFields(t *testing.T) {
	t.Parallel()

	app, _, _ := newUserApp(t)

	resp := postJSON(t, app, "/users/signup", `{"email":"a@x.com"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	app, _, _ := newUserApp(t)

	resp := postJSON(t, app, "/users/signup",
		`{"email":"a@x.com","username":"ana","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/users/signup",
		`{"email":"a@x.com","username":"outra","password":"secret1"}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	app, _, tokens := newUserApp(t)

	resp := postJSON(t, app, "/users/signup",
		`{"email":"a@x.com","username":"ana","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/users/login", `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body["token"])

	// The token is a usable session credential.
	_, err := tokens.Verify(body["token"])
	require.NoError(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	app, _, _ := newUserApp(t)

	resp := postJSON(t, app, "/users/signup",
		`{"email":"a@x.com","username":"ana","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/users/login", `{"email":"a@x.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()

	app, _, _ := newUserApp(t)

	resp := postJSON(t, app, "/users/login", `{"email":"nobody@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetMe(t *testing.T) {
	t.Parallel()

	app, _, _ := newUserApp(t)

	resp := postJSON(t, app, "/users/signup",
		`{"email":"a@x.com","username":"ana","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/users/login", `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+login["token"])
	meResp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, meResp.StatusCode)

	var me map[string]any
	require.NoError(t, json.NewDecoder(meResp.Body).Decode(&me))
	require.Equal(t, "ana", me["username"])
}
