package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nearzy/internal/core/config"
	"nearzy/internal/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew verifies that New creates a Server with the correct configuration.
func TestNew(t *testing.T) {
	cfg := &config.AppConfig{ServerPort: 8080}

	require.NoError(t, logger.Init("development", "debug"))
	srv := New(cfg)

	require.NotNil(t, srv)
	assert.NotNil(t, srv.App)
	assert.Equal(t, cfg, srv.cfg)
}

func TestServer_Health(t *testing.T) {
	srv := New(&config.AppConfig{})

	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RayIDHeader))
}

func TestServer_SessionHeader(t *testing.T) {
	srv := New(&config.AppConfig{})
	srv.App.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(SessionID(c))
	})

	t.Run("GeneratedWhenMissing", func(t *testing.T) {
		resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
		require.NoError(t, err)

		id := resp.Header.Get(SessionHeader)
		_, err = uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("EchoedWhenValid", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(SessionHeader, id)

		resp, err := srv.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, id, resp.Header.Get(SessionHeader))
	})

	t.Run("ReplacedWhenMalformed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(SessionHeader, "not-a-uuid")

		resp, err := srv.App.Test(req)
		require.NoError(t, err)
		assert.NotEqual(t, "not-a-uuid", resp.Header.Get(SessionHeader))
	})
}

func TestServer_ErrorHandler(t *testing.T) {
	srv := New(&config.AppConfig{})
	srv.App.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("kaboom")
	})

	t.Run("UnknownRoute", func(t *testing.T) {
		resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotEmpty(t, body.RayID)
	})

	t.Run("InternalError", func(t *testing.T) {
		resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Internal server error", body.Message)
	})
}

// TestServer_Run_Error verifies that Run returns an error when binding fails (e.g., privileged port).
func TestServer_Run_Error(t *testing.T) {
	require.NoError(t, logger.Init("development", "error"))
	srv := New(&config.AppConfig{ServerPort: 1})

	errCh := make(chan error)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(1 * time.Second):
		srv.App.Shutdown()
		t.Log("Server unexpectedly started or timed out on Error test")
	}
}
