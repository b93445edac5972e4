package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	corecache "farmasaude-api/internal/core/cache"
	"farmasaude-api/internal/domain"
	"farmasaude-api/internal/service"
	httpez "farmasaude-api/internal/transport/http/ez"
)

// mountSellerProducts 卖家商品管理：归属者 CRUD + 直接设置库存。
// 分组中间件已限定 seller 角色；Crud 再按 OwnerID 过滤，
// 别人创建的商品一律按不存在处理。
func mountSellerProducts(seller *gin.RouterGroup, db *gorm.DB, cc *corecache.Cache, svc *service.CatalogService) {
	invalidate := func(c *gin.Context, id string) {
		if cc == nil {
			return
		}
		cc.Invalidate(c.Request.Context(), cacheKeyCatalogList, cacheKeyProduct+id)
	}

	httpez.Crud(httpez.CrudConfig[domain.Product]{
		DB:      db,
		Group:   seller,
		Path:    "/products",
		New:     func() *domain.Product { return &domain.Product{} },
		OrderBy: "created_at DESC",
		Hooks: httpez.CrudHooks[domain.Product]{
			BeforeCreate: func(c *gin.Context, p *domain.Product) error {
				if err := service.ValidateProduct(p); err != nil {
					return err
				}
				p.InStock = p.Quantity > 0
				return nil
			},
			BeforeUpdate: func(c *gin.Context, p *domain.Product) error {
				if err := service.ValidateProduct(p); err != nil {
					return err
				}
				p.InStock = p.Quantity > 0
				return nil
			},
			AfterWrite: invalidate,
		},
	})

	// PATCH /seller/products/:id/stock — 设置现货数量并重算 in_stock
	ez := httpez.New(seller)
	type stockIn struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	httpez.RegisterAction[stockIn, *domain.Product](ez, httpez.Action[stockIn, *domain.Product]{
		Method: http.MethodPatch,
		Path:   "/products/:id/stock",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *stockIn) (*domain.Product, error) {
			p, err := svc.SetStock(c.Request.Context(), actorFrom(c), c.Param("id"), *in.Quantity)
			if err != nil {
				return nil, asActionErr(err)
			}
			invalidate(c, p.ID)
			return p, nil
		},
	})
}
