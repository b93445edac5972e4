package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"farmasaude-api/internal/service"
	httpez "farmasaude-api/internal/transport/http/ez"
)

// mountAdminActions 管理端接口集中在这里注册
func mountAdminActions(admin *gin.RouterGroup, svc *service.AuthService) {
	ez := httpez.New(admin)

	// --- GET /admin/v1/users 用户列表（按 email/name 模糊搜）---
	type listQ struct {
		Offset int    `form:"offset,default=0"`
		Limit  int    `form:"limit,default=20"`
		Q      string `form:"q"`
	}
	type row struct {
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		Name      string    `json:"name"`
		Role      string    `json:"role"`
		CreatedBy string    `json:"createdBy,omitempty"`
		CreatedAt time.Time `json:"createdAt"`
	}
	type listOut struct {
		Total int64 `json:"total"`
		Items []row `json:"items"`
	}

	httpez.RegisterAction[listQ, listOut](ez, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			users, total, err := svc.ListUsers(c.Request.Context(), actorFrom(c), in.Q, in.Offset, in.Limit)
			if err != nil {
				return listOut{}, asActionErr(err)
			}
			out := listOut{Total: total, Items: make([]row, 0, len(users))}
			for _, u := range users {
				out.Items = append(out.Items, row{
					ID: u.ID, Email: u.Email, Name: u.Name,
					Role: u.Role.String(), CreatedBy: u.CreatedBy, CreatedAt: u.CreatedAt,
				})
			}
			return out, nil
		},
	})

	// --- POST /admin/v1/sellers 创建卖家账号（createdBy = 当前 admin）---
	httpez.RegisterAction[service.Registration, sessionOut](ez, httpez.Action[service.Registration, sessionOut]{
		Method: http.MethodPost,
		Path:   "/sellers",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.Registration) (sessionOut, error) {
			u, tok, err := svc.RegisterSeller(c.Request.Context(), actorFrom(c), *in)
			if err != nil {
				return sessionOut{}, asActionErr(err)
			}
			return sessionOut{Token: tok, User: toUserOut(u)}, nil
		},
	})

	// --- DELETE /admin/v1/sellers/:id 删除卖家（软删，仅限 seller 角色账号）---
	httpez.RegisterAction[struct{}, gin.H](ez, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/sellers/:id",
		Binder: httpez.BindNone,
		Msg:    "seller deleted",
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if id == "" {
				return nil, httpez.BadRequest("missing id")
			}
			if err := svc.DeleteSeller(c.Request.Context(), actorFrom(c), id); err != nil {
				return nil, asActionErr(err)
			}
			return gin.H{"id": id}, nil
		},
	})
}
