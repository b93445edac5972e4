package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"farmasaude-api/internal/core/auth"
	"farmasaude-api/internal/core/server"
	"farmasaude-api/internal/domain"
	"farmasaude-api/internal/service"
	mdw "farmasaude-api/internal/transport/http/middleware"
)

// NewAdminEngine 管理端引擎：卖家账号管理（统一要求 admin 角色）
func NewAdminEngine(l *zap.Logger, jwter *auth.JWTer, origins []string, authSvc *service.AuthService) *gin.Engine {
	r := server.NewRouter(l, origins)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, domain.RoleAdmin))

	// 自动发现（如有）
	MountAllAdmin(admin)

	mountAdminActions(admin, authSvc)

	return r
}
