package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"farmasaude-api/internal/domain"
	mdw "farmasaude-api/internal/transport/http/middleware"
	resp "farmasaude-api/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param / c.PostForm 取
)

// AErr 统一错误对象，Code 同时决定 HTTP 状态码
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func BadRequest(msg string) error   { return &AErr{Code: 400, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: 401, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: 403, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: 404, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: 500, Msg: msg, Err: err}
}

// Action 非 CRUD 接口的一行注册：I 入参，O 出参。
// 鉴权交给分组中间件；Roles 非空时额外要求归一化角色命中其一。
type Action[I any, O any] struct {
	Method  string        // "GET" | "POST" | "PUT" | "PATCH" | "DELETE"
	Path    string        // 例："/orders/:id/cancel"
	Binder  Binder        // 绑定方式
	Roles   []domain.Role // 限定角色（可选）
	Status  int           // 成功 HTTP 状态码，默认 200
	Msg     string        // 成功文案（可选）
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) 角色
		if len(a.Roles) > 0 {
			role := domain.Role(c.GetString(mdw.KeyRole))
			ok := false
			for _, r := range a.Roles {
				if role == r {
					ok = true
					break
				}
			}
			if !ok {
				c.JSON(resp.HTTPStatus(resp.CodeForbidden), resp.Error(resp.CodeForbidden, "forbidden"))
				return
			}
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone
		}
		if bindErr != nil {
			c.JSON(resp.HTTPStatus(resp.CodeBadRequest), resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		// 3) 执行 + 统一错误映射
		out, err := a.Handler(c, &in)
		if err != nil {
			var ae *AErr
			if errors.As(err, &ae) {
				c.JSON(resp.HTTPStatus(ae.Code), resp.Error(ae.Code, ae.Error()))
				return
			}
			c.JSON(resp.HTTPStatus(resp.CodeServerError), resp.Error(resp.CodeServerError, err.Error()))
			return
		}
		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		if a.Msg != "" {
			c.JSON(status, resp.OKMsg(a.Msg, out))
			return
		}
		c.JSON(status, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}
