package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"farmasaude-api/internal/core/auth"
	"farmasaude-api/internal/domain"
	resp "farmasaude-api/internal/transport/http/response"
)

// 下游统一从这几个键取身份；角色只在这里归一化一次
const (
	KeyUserID = "userId"
	KeyEmail  = "email"
	KeyRole   = "role"
)

// AuthJWT 校验 Bearer token。requireRoles 非空时要求归一化后的角色命中其一。
func AuthJWT(j *auth.JWTer, requireRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeUnauthorized),
				resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeUnauthorized),
				resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		role := domain.NormalizeRole(claims.Role)
		if len(requireRoles) > 0 {
			hit := false
			for _, r := range requireRoles {
				if role == r {
					hit = true
					break
				}
			}
			if !hit {
				c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeForbidden),
					resp.Error(resp.CodeForbidden, "forbidden"))
				return
			}
		}
		c.Set(KeyUserID, claims.UID)
		c.Set(KeyEmail, claims.Email)
		c.Set(KeyRole, role.String())
		c.Next()
	}
}
