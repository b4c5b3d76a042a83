package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nearzy/internal/core/cache"
	"nearzy/internal/core/server"
	"nearzy/internal/features/auth/adapters"
	"nearzy/internal/features/auth/domain"
	"nearzy/internal/features/auth/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionID = "8a1f9a6e-3a6c-4d0e-9a55-7f1f2b0c9d11"

// stubProvider accepts the password "pw" for any email and OTP 123456.
type stubProvider struct{}

func (stubProvider) SignInWithPassword(_ context.Context, email, password string) (*domain.Identity, error) {
	if password != "pw" {
		return nil, &domain.IdentityError{Status: 400, Message: "INVALID_LOGIN_CREDENTIALS"}
	}
	return &domain.Identity{UID: "uid-" + email, Email: email}, nil
}

func (p stubProvider) SignUp(ctx context.Context, email, password string) (*domain.Identity, error) {
	return p.SignInWithPassword(ctx, email, password)
}

func (stubProvider) SendVerificationCode(context.Context, string, string) (string, error) {
	return "handle-1", nil
}

func (stubProvider) ConfirmPhone(_ context.Context, handle, code string) (*domain.Identity, error) {
	if handle != "handle-1" || code != "123456" {
		return nil, &domain.IdentityError{Status: 400, Message: "INVALID_CODE"}
	}
	return &domain.Identity{UID: "uid-phone", Phone: "+919876543210"}, nil
}

func (stubProvider) SendPasswordReset(context.Context, string) error {
	return nil
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	svc := service.NewAuthService(
		stubProvider{},
		adapters.NewCacheUserStore(cache.NewMemoryAdapter(), time.Hour),
		service.NewTokenIssuer("secret", time.Hour),
	)
	h := NewAuthHandler(svc)

	app := fiber.New()
	app.Use(server.Sessions())
	app.Use(Authenticate(svc))
	app.Post("/auth/login", h.Login)
	app.Post("/auth/signup", h.SignUp)
	app.Post("/auth/phone", h.StartPhone)
	app.Post("/auth/phone/confirm", h.ConfirmPhone)
	app.Post("/auth/password-reset", h.ResetPassword)
	app.Post("/auth/logout", h.Logout)
	app.Get("/auth/me", h.Me)
	app.Get("/admin", RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func request(t *testing.T, app *fiber.App, method, path, body, token string) *http.Response {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(server.SessionHeader, sessionID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func login(t *testing.T, app *fiber.App, email string) service.AuthResult {
	t.Helper()
	resp := request(t, app, "POST", "/auth/login", `{"email":"`+email+`","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var res service.AuthResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return res
}

func TestAuthHandler_LoginAndRoles(t *testing.T) {
	app := setupApp(t)

	t.Run("Anonymous", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, request(t, app, "GET", "/auth/me", "", "").StatusCode)
		assert.Equal(t, http.StatusUnauthorized, request(t, app, "GET", "/admin", "", "").StatusCode)
	})

	t.Run("Customer", func(t *testing.T) {
		res := login(t, app, "asha@mail.com")
		assert.Equal(t, domain.RoleCustomer, res.User.Role)
		assert.Equal(t, http.StatusForbidden, request(t, app, "GET", "/admin", "", res.AccessToken).StatusCode)
	})

	t.Run("Admin", func(t *testing.T) {
		res := login(t, app, "admin@nearzy.com")
		assert.Equal(t, domain.RoleAdmin, res.User.Role)
		assert.Equal(t, http.StatusOK, request(t, app, "GET", "/admin", "", res.AccessToken).StatusCode)

		resp := request(t, app, "GET", "/auth/me", "", res.AccessToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var me domain.User
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
		assert.Equal(t, "admin@nearzy.com", me.Email)
	})

	t.Run("BadToken", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, request(t, app, "GET", "/auth/me", "", "garbage").StatusCode)
	})
}

func TestAuthHandler_Errors(t *testing.T) {
	app := setupApp(t)

	resp := request(t, app, "POST", "/auth/login", `{"email":"asha","password":"pw"}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = request(t, app, "POST", "/auth/login", `{"email":"a@b.com","password":"wrong"}`, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body server.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INVALID_LOGIN_CREDENTIALS", body.Message)

	resp = request(t, app, "POST", "/auth/password-reset", `{"email":"a@b.com"}`, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAuthHandler_PhoneFlow(t *testing.T) {
	app := setupApp(t)

	resp := request(t, app, "POST", "/auth/phone", `{"phone":"98765"}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = request(t, app, "POST", "/auth/phone", `{"phone":"9876543210","recaptcha_token":"c"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var started PhoneResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&started))
	assert.Equal(t, "handle-1", started.VerificationID)

	resp = request(t, app, "POST", "/auth/phone/confirm", `{"verification_id":"handle-1","code":"12"}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = request(t, app, "POST", "/auth/phone/confirm", `{"verification_id":"handle-1","code":"123456"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var res service.AuthResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, domain.RoleCustomer, res.User.Role)
}

func TestAuthHandler_Logout(t *testing.T) {
	app := setupApp(t)
	res := login(t, app, "admin@nearzy.com")

	resp := request(t, app, "POST", "/auth/logout", "", res.AccessToken)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = request(t, app, "GET", "/admin", "", res.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticate_ReadsLiveSession(t *testing.T) {
	svc := service.NewAuthService(
		stubProvider{},
		adapters.NewCacheUserStore(cache.NewMemoryAdapter(), time.Hour),
		service.NewTokenIssuer("secret", time.Hour),
	)
	app := fiber.New()
	app.Use(Authenticate(svc))
	app.Get("/admin", RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString(CurrentUser(c).Email)
	})

	get := func(token string) int {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	res, err := svc.Login(context.Background(), sessionID, "admin@nearzy.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(res.AccessToken))

	t.Run("ExpiredSessionIsRestored", func(t *testing.T) {
		require.Equal(t, 1, svc.Sessions().Expire(-time.Minute))
		assert.Equal(t, http.StatusOK, get(res.AccessToken))
		assert.Equal(t, 1, svc.Sessions().Len())
	})

	t.Run("SignedOutSessionIsRejected", func(t *testing.T) {
		session, ok := svc.Sessions().Get(sessionID)
		require.True(t, ok)
		session.SetUser(nil)
		assert.Equal(t, http.StatusUnauthorized, get(res.AccessToken))
	})
}
