package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmasaude-api/internal/domain"
	"farmasaude-api/internal/service"
	httpez "farmasaude-api/internal/transport/http/ez"
	mdw "farmasaude-api/internal/transport/http/middleware"
)

// mountOrderActions 订单面：下单、我的订单、全部销售、详情、取消
func mountOrderActions(authed *gin.RouterGroup, svc *service.OrderService) {
	ez := httpez.New(authed)

	// POST /orders — 顾客下单（checkout）
	type createIn struct {
		Items []service.LineRequest `json:"items" binding:"required"`
	}
	httpez.RegisterAction[createIn, *domain.Order](ez, httpez.Action[createIn, *domain.Order]{
		Method: http.MethodPost,
		Path:   "/orders",
		Binder: httpez.BindJSON,
		Roles:  []domain.Role{domain.RoleCustomer},
		Status: http.StatusCreated,
		Msg:    "order created",
		Handler: func(c *gin.Context, in *createIn) (*domain.Order, error) {
			o, err := svc.Create(c.Request.Context(), actorFrom(c).ID, in.Items)
			if err != nil {
				mdw.CountOrder("create", "rejected")
				return nil, asActionErr(err)
			}
			mdw.CountOrder("create", "ok")
			return o, nil
		},
	})

	// GET /orders/mine — 我的订单，新的在前
	httpez.RegisterAction[struct{}, []domain.Order](ez, httpez.Action[struct{}, []domain.Order]{
		Method: http.MethodGet,
		Path:   "/orders/mine",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Order, error) {
			orders, err := svc.ListForCustomer(c.Request.Context(), actorFrom(c).ID)
			if err != nil {
				return nil, asActionErr(err)
			}
			return orders, nil
		},
	})

	// GET /orders — 全部销售（seller/admin）
	httpez.RegisterAction[struct{}, []domain.Order](ez, httpez.Action[struct{}, []domain.Order]{
		Method: http.MethodGet,
		Path:   "/orders",
		Binder: httpez.BindNone,
		Roles:  []domain.Role{domain.RoleSeller, domain.RoleAdmin},
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Order, error) {
			orders, err := svc.ListAll(c.Request.Context(), actorFrom(c))
			if err != nil {
				return nil, asActionErr(err)
			}
			return orders, nil
		},
	})

	// GET /orders/:id — 本人或 seller/admin 可见
	httpez.RegisterAction[struct{}, *domain.Order](ez, httpez.Action[struct{}, *domain.Order]{
		Method: http.MethodGet,
		Path:   "/orders/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Order, error) {
			o, err := svc.GetByID(c.Request.Context(), c.Param("id"), actorFrom(c))
			if err != nil {
				return nil, asActionErr(err)
			}
			return o, nil
		},
	})

	// PATCH /orders/:id/cancel — 下单顾客或相关卖家取消，库存回补
	httpez.RegisterAction[struct{}, *domain.Order](ez, httpez.Action[struct{}, *domain.Order]{
		Method: http.MethodPatch,
		Path:   "/orders/:id/cancel",
		Binder: httpez.BindNone,
		Msg:    "order cancelled",
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Order, error) {
			o, err := svc.Cancel(c.Request.Context(), c.Param("id"), actorFrom(c))
			if err != nil {
				mdw.CountOrder("cancel", "rejected")
				return nil, asActionErr(err)
			}
			mdw.CountOrder("cancel", "ok")
			return o, nil
		},
	})
}
