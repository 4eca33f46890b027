package handler

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/CarolGonzaga/projeto-audiomante/internal/service"
	"github.com/CarolGonzaga/projeto-audiomante/pkg/token"
)

const (
	googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
	stateCookieName   = "oauth_state"
	stateCookieMaxAge = 10 * time.Minute
)

// AuthHandler runs the Google login flow: redirect out with a state
// cookie, then resolve the callback into an account and a session token.
type AuthHandler struct {
	userService *service.UserService
	tokens      *token.Service
	oauth       *oauth2.Config
	userInfoURL string
	clientURL   string
	log         *zap.SugaredLogger
}

func NewAuthHandler(
	userService *service.UserService,
	tokens *token.Service,
	oauth *oauth2.Config,
	clientURL string,
	log *zap.SugaredLogger,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
		oauth:       oauth,
		userInfoURL: googleUserInfoURL,
		clientURL:   clientURL,
		log:         log,
	}
}

// googleProfile is the slice of the userinfo payload the flow consumes.
// It is read once per login and discarded.
type googleProfile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleLogin redirects the client to Google's consent screen
// GET /auth/google
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	state, err := generateState()
	if err != nil {
		h.log.Errorw("state generation failed", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Ocorreu um erro ao iniciar o login.")
	}

	c.Cookie(&fiber.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Expires:  time.Now().Add(stateCookieMaxAge),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect(h.oauth.AuthCodeURL(state), fiber.StatusFound)
}

// GoogleCallback is the provider redirect target. On success the client
// is redirected to the front-end callback with the token as a query
// parameter; any provider or datastore failure aborts the flow with a
// generic error.
// GET /auth/google/callback
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	defer h.clearStateCookie(c)

	if errCode := c.Query("error"); errCode != "" {
		h.log.Warnw("google callback returned error", "code", errCode)
		return fail(c, fiber.StatusBadGateway, "Falha na autenticação com o Google.")
	}

	state := c.Query("state")
	if state == "" || state != c.Cookies(stateCookieName) {
		return fail(c, fiber.StatusBadRequest, "Estado de autenticação inválido.")
	}

	code := c.Query("code")
	if code == "" {
		return fail(c, fiber.StatusBadRequest, "Código de autorização ausente.")
	}

	exchanged, err := h.oauth.Exchange(c.Context(), code)
	if err != nil {
		h.log.Errorw("code exchange failed", "error", err)
		return fail(c, fiber.StatusBadGateway, "Falha na autenticação com o Google.")
	}

	profile, err := h.fetchProfile(c, exchanged)
	if err != nil {
		h.log.Errorw("userinfo fetch failed", "error", err)
		return fail(c, fiber.StatusBadGateway, "Falha na autenticação com o Google.")
	}

	user, err := h.userService.ResolveOrProvisionFromIdentity(c.Context(), profile.Email, profile.Name)
	if err != nil {
		h.log.Errorw("account provisioning failed", "error", err, "email", profile.Email)
		return fail(c, fiber.StatusInternalServerError, "Ocorreu um erro ao fazer login.")
	}

	tok, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Errorw("token issuance failed", "error", err, "user_id", user.ID)
		return fail(c, fiber.StatusInternalServerError, "Ocorreu um erro ao fazer login.")
	}

	redirect := h.clientURL + "/auth/callback?token=" + url.QueryEscape(tok)
	return c.Redirect(redirect, fiber.StatusFound)
}

func (h *AuthHandler) fetchProfile(c *fiber.Ctx, tok *oauth2.Token) (*googleProfile, error) {
	resp, err := h.oauth.Client(c.Context(), tok).Get(h.userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (h *AuthHandler) clearStateCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
