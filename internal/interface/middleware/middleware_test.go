package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userapp "github.com/oksasatya/go-ddd-credentials/internal/application"
	"github.com/oksasatya/go-ddd-credentials/internal/domain/entity"
)

type stubAuthenticator struct {
	err   error
	calls []string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, identifier entity.Identifier, rawPassword string) error {
	s.calls = append(s.calls, identifier.String()+":"+rawPassword)
	return s.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newAuthEngine(auth Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Auth(auth, quietLogger()), func(c *gin.Context) {
		id, ok := IdentifierFrom(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, id.String())
	})
	return r
}

func TestAuth(t *testing.T) {
	cases := []struct {
		name     string
		loginID  string
		password string
		err      error
		status   int
		calls    int
	}{
		{"authenticated", "test1234", "Password1!", nil, http.StatusOK, 1},
		{"missing login id", "", "Password1!", nil, http.StatusUnauthorized, 0},
		{"missing password", "test1234", "", nil, http.StatusUnauthorized, 0},
		{"malformed login id", "NO", "Password1!", nil, http.StatusUnauthorized, 0},
		{"wrong password", "test1234", "Wrong1234!", userapp.ErrAuthenticationFailed, http.StatusUnauthorized, 1},
		{"locked", "test1234", "Password1!", userapp.ErrAccountLocked, http.StatusLocked, 1},
		{"store failure", "test1234", "Password1!", io.ErrUnexpectedEOF, http.StatusInternalServerError, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubAuthenticator{err: tc.err}
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.loginID != "" {
				req.Header.Set(HeaderLoginID, tc.loginID)
			}
			if tc.password != "" {
				req.Header.Set(HeaderLoginPw, tc.password)
			}
			w := httptest.NewRecorder()
			newAuthEngine(stub).ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			assert.Len(t, stub.calls, tc.calls)
			if tc.status == http.StatusOK {
				assert.Equal(t, tc.loginID, w.Body.String())
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Body.String()
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	assert.Equal(t, generated, w.Header().Get(HeaderRequestID))

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Body.String())
}

func TestRealIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, RealIPFrom(c)) })

	cases := map[string]struct {
		headers map[string]string
		want    string
	}{
		"cloudflare": {map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"}, "203.0.113.7"},
		"forwarded":  {map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"}, "198.51.100.1"},
		"garbage":    {map[string]string{"CF-Connecting-IP": "nope", "X-Forwarded-For": "bad"}, "192.0.2.1"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Body.String())
		})
	}
}
