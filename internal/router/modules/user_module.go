package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/go-ddd-credentials/internal/interface/http"
	"github.com/oksasatya/go-ddd-credentials/internal/interface/middleware"
)

// UserModule mounts the credential routes under <group>/v1/users.
// Public: POST /register
// Header authenticated: GET /me, PUT /me/password
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    middleware.Authenticator
	Logger  *logrus.Logger
}

func NewUserModule(h *handlers.UserHandler, auth middleware.Authenticator, logger *logrus.Logger) *UserModule {
	return &UserModule{Handler: h, Auth: auth, Logger: logger}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/v1/users")
	users.POST("/register", m.Handler.Register)

	me := users.Group("/me")
	me.Use(middleware.Auth(m.Auth, m.Logger))
	{
		me.GET("", m.Handler.Me)
		me.PUT("/password", m.Handler.UpdatePassword)
	}
}
