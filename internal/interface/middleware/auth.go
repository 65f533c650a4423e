package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-ddd-credentials/internal/application"
	"github.com/oksasatya/go-ddd-credentials/internal/domain/entity"
	"github.com/oksasatya/go-ddd-credentials/pkg/response"
)

const (
	HeaderLoginID   = "X-LoginId"
	HeaderLoginPw   = "X-LoginPw"
	ctxIdentifier   = "identifier"
	unauthorizedMsg = "authentication required"
)

// Authenticator is the part of the application service the gate needs.
type Authenticator interface {
	Authenticate(ctx context.Context, identifier entity.Identifier, rawPassword string) error
}

// Auth checks the X-LoginId / X-LoginPw headers on every request and stores
// the authenticated identifier in the Gin context.
func Auth(auth Authenticator, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		loginID := strings.TrimSpace(c.GetHeader(HeaderLoginID))
		password := c.GetHeader(HeaderLoginPw)
		if loginID == "" || password == "" {
			response.Error[any](c, http.StatusUnauthorized, unauthorizedMsg, nil)
			c.Abort()
			return
		}

		identifier, err := entity.NewIdentifier(loginID)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, unauthorizedMsg, nil)
			c.Abort()
			return
		}

		if err := auth.Authenticate(c.Request.Context(), identifier, password); err != nil {
			switch {
			case errors.Is(err, userapp.ErrAccountLocked):
				response.Error[any](c, http.StatusLocked, err.Error(), nil)
			case errors.Is(err, userapp.ErrAuthenticationFailed):
				response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
			default:
				logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("authenticate request")
				response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
			}
			c.Abort()
			return
		}

		c.Set(ctxIdentifier, identifier)
		c.Next()
	}
}

// IdentifierFrom returns the identifier stored by Auth.
func IdentifierFrom(c *gin.Context) (entity.Identifier, bool) {
	v, ok := c.Get(ctxIdentifier)
	if !ok {
		return entity.Identifier{}, false
	}
	identifier, ok := v.(entity.Identifier)
	return identifier, ok
}
