package router

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-credentials/config"
	"github.com/oksasatya/go-ddd-credentials/internal/container"
	"github.com/oksasatya/go-ddd-credentials/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-credentials/internal/router/modules"
	"github.com/oksasatya/go-ddd-credentials/pkg/helpers"
	"github.com/oksasatya/go-ddd-credentials/pkg/validation"
)

func testConfig() *config.Config {
	return &config.Config{
		AppName:               "credentials",
		StoreDriver:           config.StoreDriverMemory,
		PasswordHashAlgorithm: "sha3-256",
		PasswordSaltBytes:     16,
		LockoutWindow:         time.Minute,
	}
}

// newTestEngine populates the container, lets extra add more singletons,
// then builds the engine.
func newTestEngine(t *testing.T, cfg *config.Config, extra ...func()) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	container.Reset()
	t.Cleanup(container.Reset)
	container.SetConfig(cfg)
	container.SetLogger(logger)
	for _, fn := range extra {
		fn()
	}

	r := gin.New()
	reg := NewRegistry(r)
	reg.Use(middleware.RequestIDMiddleware())
	require.NoError(t, InitModules(reg))
	reg.RegisterAll()
	return r
}

func serve(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const registerJSON = `{"loginId":"test1234","password":"Password1!","name":"kim","birthday":"1990-05-15","email":"test@example.com"}`

func TestInitModulesRoutes(t *testing.T) {
	r := newTestEngine(t, testConfig())

	w := serve(r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodPost, "/api/v1/users/register", registerJSON, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	headers := map[string]string{middleware.HeaderLoginID: "test1234", middleware.HeaderLoginPw: "Password1!"}
	w = serve(r, http.MethodGet, "/api/v1/users/me", "", headers)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"ki*"`)
}

func TestInitModulesLockoutWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := helpers.NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := testConfig()
	cfg.LockoutEnabled = true

	r := newTestEngine(t, cfg, func() { container.SetRedis(rdb) })

	w := serve(r, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"ok"`)

	require.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/api/v1/users/register", registerJSON, nil).Code)

	bad := map[string]string{middleware.HeaderLoginID: "test1234", middleware.HeaderLoginPw: "Wrong1234!"}
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/v1/users/me", "", bad).Code)
	}
	good := map[string]string{middleware.HeaderLoginID: "test1234", middleware.HeaderLoginPw: "Password1!"}
	assert.Equal(t, http.StatusLocked, serve(r, http.MethodGet, "/api/v1/users/me", "", good).Code)
	assert.True(t, mr.Exists("auth:failed:test1234"))
	assert.Greater(t, mr.TTL("auth:failed:test1234"), time.Duration(0))
}

func TestInitModulesRejectsBadEncoderConfig(t *testing.T) {
	cfg := testConfig()
	cfg.PasswordHashAlgorithm = "md5"

	container.Reset()
	t.Cleanup(container.Reset)
	container.SetConfig(cfg)
	container.SetLogger(logrus.New())

	assert.Error(t, InitModules(NewRegistry(gin.New())))
}

func TestHealthModuleReportsFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reg := NewRegistry(r)
	reg.AddRoot(modules.NewHealthModule(map[string]modules.Check{
		"postgres": func(context.Context) error { return errors.New("connection refused") },
		"redis":    func(context.Context) error { return nil },
	}))
	reg.RegisterAll()

	w := serve(r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"postgres":"connection refused"`)
	assert.Contains(t, w.Body.String(), `"redis":"ok"`)
}
