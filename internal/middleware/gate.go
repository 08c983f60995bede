package middleware

import (
	"souschef_backend/internal/config"
	"souschef_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

// GateMiddleware 校验分享页观看令牌。令牌来自门禁接口，
// 只证明访客填过邮箱，不承载任何权限。
func GateMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseViewerToken(tokenString, cfg.Gate.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("viewer", claims)
		c.Next()
	}
}
