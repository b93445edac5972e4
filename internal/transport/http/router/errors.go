package router

import (
	"errors"

	"github.com/gin-gonic/gin"

	"farmasaude-api/internal/domain"
	"farmasaude-api/internal/service"
	httpez "farmasaude-api/internal/transport/http/ez"
	mdw "farmasaude-api/internal/transport/http/middleware"
)

func actorFrom(c *gin.Context) service.Actor {
	return service.Actor{
		ID:   c.GetString(mdw.KeyUserID),
		Role: domain.Role(c.GetString(mdw.KeyRole)),
	}
}

// asActionErr 服务层错误分类 → 统一错误对象（带 HTTP 语义的 code）
func asActionErr(err error) error {
	if err == nil {
		return nil
	}
	var ise *domain.InsufficientStockError
	if errors.As(err, &ise) {
		return httpez.BadRequest(ise.Error())
	}
	switch {
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return httpez.NotFound(err.Error())
	case errors.Is(err, service.ErrForbidden):
		return httpez.Forbidden(err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return httpez.Unauthorized(err.Error())
	case errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrAlreadyCancelled),
		errors.Is(err, service.ErrAlreadyCompleted),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrNotASeller),
		errors.Is(err, service.ErrNegativePrice),
		errors.Is(err, service.ErrNegativeQuantity):
		return httpez.BadRequest(err.Error())
	}
	return httpez.Internal("internal error", err)
}
