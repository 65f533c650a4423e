package router

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-credentials/internal/router/modules"
)

// Module mounts a group of routes. API modules receive the /api group,
// root modules the engine's top-level group.
type Module interface {
	Register(rg *gin.RouterGroup)
}

var (
	_ Module = (*modules.UserModule)(nil)
	_ Module = (*modules.HealthModule)(nil)
)
