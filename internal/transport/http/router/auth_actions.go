package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmasaude-api/internal/domain"
	"farmasaude-api/internal/service"
	httpez "farmasaude-api/internal/transport/http/ez"
)

type userOut struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func toUserOut(u *domain.User) userOut {
	return userOut{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role.String()}
}

type sessionOut struct {
	Token string  `json:"token"`
	User  userOut `json:"user"`
}

// mountAuthActions 公共入口：登录 + 顾客自助注册
func mountAuthActions(api *gin.RouterGroup, svc *service.AuthService) {
	ezPublic := httpez.New(api)

	type loginIn struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	httpez.RegisterAction[loginIn, sessionOut](ezPublic, httpez.Action[loginIn, sessionOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (sessionOut, error) {
			u, tok, err := svc.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return sessionOut{}, asActionErr(err)
			}
			return sessionOut{Token: tok, User: toUserOut(u)}, nil
		},
	})

	httpez.RegisterAction[service.Registration, sessionOut](ezPublic, httpez.Action[service.Registration, sessionOut]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.Registration) (sessionOut, error) {
			u, tok, err := svc.RegisterCustomer(c.Request.Context(), *in)
			if err != nil {
				return sessionOut{}, asActionErr(err)
			}
			return sessionOut{Token: tok, User: toUserOut(u)}, nil
		},
	})
}

// mountMe 已登录用户快照（挂在鉴权分组才能拿到 userId）
func mountMe(authed *gin.RouterGroup, svc *service.AuthService) {
	ezAuth := httpez.New(authed)

	httpez.RegisterAction[struct{}, userOut](ezAuth, httpez.Action[struct{}, userOut]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (userOut, error) {
			u, err := svc.GetUser(c.Request.Context(), actorFrom(c).ID)
			if err != nil {
				return userOut{}, asActionErr(err)
			}
			return toUserOut(u), nil
		},
	})
}
