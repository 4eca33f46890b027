package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/CarolGonzaga/projeto-audiomante/internal/service"
	"github.com/CarolGonzaga/projeto-audiomante/pkg/token"
)

// fakeProvider stands in for Google: a token endpoint that accepts any
// code and a userinfo endpoint gated on the issued access token.
func fakeProvider(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "fake-access-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fake-access-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"email": "b@y.com",
			"name":  "Bea Souza",
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newAuthApp(t *testing.T, provider *httptest.Server) (*fiber.App, *memUserRepo, *token.Service) {
	t.Helper()

	repo := newMemUserRepo()
	sugar := zap.NewNop().Sugar()
	tokens := token.NewService("test-secret", 7*24*time.Hour)
	userService := service.NewUserService(repo, sugar)

	oauthConfig := &oauth2.Config{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURL:  "http://localhost:3001/auth/google/callback",
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  provider.URL + "/auth",
			TokenURL: provider.URL + "/token",
		},
	}

	authHandler := NewAuthHandler(userService, tokens, oauthConfig, "http://localhost:3000", sugar)
	authHandler.userInfoURL = provider.URL + "/userinfo"

	app := fiber.New()
	app.Get("/auth/google", authHandler.GoogleLogin)
	app.Get("/auth/google/callback", authHandler.GoogleCallback)

	return app, repo, tokens
}

// stateCookie pulls the oauth_state value out of a login response.
func stateCookie(t *testing.T, resp *http.Response) string {
	t.Helper()

	for _, c := range resp.Cookies() {
		if c.Name == stateCookieName {
			return c.Value
		}
	}
	t.Fatal("oauth_state cookie not set")
	return ""
}

func TestGoogleLogin_RedirectsWithState(t *testing.T) {
	t.Parallel()

	app, _, _ := newAuthApp(t, fakeProvider(t))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	state := stateCookie(t, resp)
	require.NotEmpty(t, state)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	require.Equal(t, state, loc.Query().Get("state"))
	require.Equal(t, "test-client", loc.Query().Get("client_id"))
}

func TestGoogleCallback_ProvisionsAndRedirects(t *testing.T) {
	t.Parallel()

	app, repo, tokens := newAuthApp(t, fakeProvider(t))

	login, err := app.Test(httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	require.NoError(t, err)
	state := stateCookie(t, login)

	req := httptest.NewRequest(http.MethodGet,
		"/auth/google/callback?state="+url.QueryEscape(state)+"&code=any-code", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: state})

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(resp.Header.Get("Location"), "http://localhost:3000/auth/callback?token="))

	// The redirect carries a session token for the provisioned account.
	userID, err := tokens.Verify(loc.Query().Get("token"))
	require.NoError(t, err)

	user, err := repo.GetByID(t.Context(), userID)
	require.NoError(t, err)
	require.Equal(t, "b@y.com", user.Email)
	require.Empty(t, user.PasswordHash)
}

func TestGoogleCallback_ReusesExistingAccount(t *testing.T) {
	t.Parallel()

	app, repo, tokens := newAuthApp(t, fakeProvider(t))

	var firstID string
	for i := 0; i < 2; i++ {
		login, err := app.Test(httptest.NewRequest(http.MethodGet, "/auth/google", nil))
		require.NoError(t, err)
		state := stateCookie(t, login)

		req := httptest.NewRequest(http.MethodGet,
			"/auth/google/callback?state="+url.QueryEscape(state)+"&code=any-code", nil)
		req.AddCookie(&http.Cookie{Name: stateCookieName, Value: state})

		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusFound, resp.StatusCode)

		loc, err := url.Parse(resp.Header.Get("Location"))
		require.NoError(t, err)
		userID, err := tokens.Verify(loc.Query().Get("token"))
		require.NoError(t, err)

		if i == 0 {
			firstID = userID.String()
		} else {
			require.Equal(t, firstID, userID.String())
		}
	}

	repo.mu.Lock()
	require.Len(t, repo.users, 1)
	repo.mu.Unlock()
}

func TestGoogleCallback_StateMismatch(t *testing.T) {
	t.Parallel()

	app, _, _ := newAuthApp(t, fakeProvider(t))

	req := httptest.NewRequest(http.MethodGet,
		"/auth/google/callback?state=attacker&code=any-code", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "legit"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGoogleCallback_ProviderError(t *testing.T) {
	t.Parallel()

	app, _, _ := newAuthApp(t, fakeProvider(t))

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?error=access_denied", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
