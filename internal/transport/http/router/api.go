package router

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"farmasaude-api/internal/core/auth"
	"farmasaude-api/internal/core/cache"
	"farmasaude-api/internal/core/server"
	"farmasaude-api/internal/domain"
	"farmasaude-api/internal/service"
	mdw "farmasaude-api/internal/transport/http/middleware"
)

type Services struct {
	Auth    *service.AuthService
	Catalog *service.CatalogService
	Orders  *service.OrderService
}

var registerOnce sync.Once

// NewAPIEngine 面向店面的引擎：公开目录 + 认证 + 订单 + 卖家商品管理
func NewAPIEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, cc *cache.Cache, origins []string, svcs Services) *gin.Engine {
	r := server.NewRouter(l, origins)

	// 中间件
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

	// 健康检查 + 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 前缀
	api := r.Group("/api/v1")

	// 统一注册器：公开目录作为模块挂载
	registerOnce.Do(func() {
		Register(&catalogModule{svc: svcs.Catalog, cc: cc})
	})
	MountAllAPI(api)

	// 公共：登录 / 注册
	mountAuthActions(api, svcs.Auth)

	// 鉴权分组（/me、订单）
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter))
	mountMe(authed, svcs.Auth)
	mountOrderActions(authed, svcs.Orders)

	// 卖家分组：商品管理（角色在分组中间件卡死）
	seller := api.Group("/seller")
	seller.Use(mdw.AuthJWT(jwter, domain.RoleSeller))
	mountSellerProducts(seller, db, cc, svcs.Catalog)

	return r
}
