package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter 引擎基座：ginzap 访问日志/恢复 + CORS。
// origins 为空时放开（开发模式），否则仅允许前端来源。
func NewRouter(l *zap.Logger, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(ginzap.Ginzap(l, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(l, true))
	if len(origins) == 0 {
		r.Use(cors.Default())
	} else {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
		cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
		r.Use(cors.New(cfg))
	}
	return r
}

func BuildServer(addr string, handler http.Handler, rt, wt, it time.Duration) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    rt,
		WriteTimeout:   wt,
		IdleTimeout:    it,
		MaxHeaderBytes: 1 << 20, // 1MB
	}
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }
