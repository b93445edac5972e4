package router

import (
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
)

// 模块实现其中一个或两个接口，分别挂到店面引擎和管理引擎上
type APIModule interface{ MountAPI(*gin.RouterGroup) }
type AdminModule interface{ MountAdmin(*gin.RouterGroup) }

// 可选：实现该接口可控制挂载顺序（数值越小越先挂）。
// 公开目录用低值抢先挂，避免被参数路由盖住。
type prioritizer interface{ Priority() int }

const defaultPriority = 100

var (
	regMu     sync.RWMutex
	apiMods   []APIModule
	adminMods []AdminModule
)

// Register 统一注册入口：根据类型断言分发到 API/Admin 列表
func Register(mod any) {
	regMu.Lock()
	defer regMu.Unlock()
	if m, ok := mod.(APIModule); ok {
		apiMods = append(apiMods, m)
	}
	if m, ok := mod.(AdminModule); ok {
		adminMods = append(adminMods, m)
	}
}

// MountAllAPI 在店面前缀（/api/v1）上按优先级挂载所有 API 模块
func MountAllAPI(api *gin.RouterGroup) {
	regMu.RLock()
	mods := append([]APIModule(nil), apiMods...)
	regMu.RUnlock()

	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAPI(api)
	}
}

// MountAllAdmin 在管理前缀（/admin/v1）上按优先级挂载所有 Admin 模块
func MountAllAdmin(admin *gin.RouterGroup) {
	regMu.RLock()
	mods := append([]AdminModule(nil), adminMods...)
	regMu.RUnlock()

	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAdmin(admin)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return defaultPriority
}
