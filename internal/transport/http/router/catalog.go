package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	corecache "farmasaude-api/internal/core/cache"
	"farmasaude-api/internal/domain"
	"farmasaude-api/internal/service"
	httpez "farmasaude-api/internal/transport/http/ez"
)

const (
	cacheKeyCatalogList = "catalog:list"
	cacheKeyProduct     = "product:"
	catalogCacheTTL     = 30 * time.Second
)

// catalogModule 公开商品目录，走统一注册器挂载。
// 列表/详情读穿 redis；带筛选条件的列表直接回源（键空间不可枚举）。
type catalogModule struct {
	svc *service.CatalogService
	cc  *corecache.Cache
}

func (m *catalogModule) Priority() int { return 10 }

func (m *catalogModule) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api)

	type listQ struct {
		Category string `form:"category"`
		Search   string `form:"search"`
	}
	httpez.RegisterAction[listQ, []domain.Product](ez, httpez.Action[listQ, []domain.Product]{
		Method: http.MethodGet,
		Path:   "/products",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) ([]domain.Product, error) {
			f := domain.ProductFilter{Category: in.Category, Search: in.Search}
			if f.Category != "" || f.Search != "" {
				ps, err := m.svc.ListPublic(c.Request.Context(), f)
				if err != nil {
					return nil, asActionErr(err)
				}
				return ps, nil
			}
			ps, err := corecache.GetOrLoadJSON[[]domain.Product](m.cc, c.Request.Context(),
				cacheKeyCatalogList, catalogCacheTTL,
				func(ctx context.Context) (*[]domain.Product, error) {
					out, e := m.svc.ListPublic(ctx, f)
					if e != nil {
						return nil, e
					}
					return &out, nil
				})
			if err != nil {
				return nil, asActionErr(err)
			}
			if ps == nil {
				return []domain.Product{}, nil
			}
			return *ps, nil
		},
	})

	httpez.RegisterAction[struct{}, *domain.Product](ez, httpez.Action[struct{}, *domain.Product]{
		Method: http.MethodGet,
		Path:   "/products/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Product, error) {
			id := c.Param("id")
			p, err := corecache.GetOrLoadJSON[domain.Product](m.cc, c.Request.Context(),
				cacheKeyProduct+id, catalogCacheTTL,
				func(ctx context.Context) (*domain.Product, error) {
					return m.svc.Get(ctx, id)
				})
			if err != nil {
				return nil, asActionErr(err)
			}
			if p == nil {
				return nil, asActionErr(service.ErrProductNotFound)
			}
			return p, nil
		},
	})
}
