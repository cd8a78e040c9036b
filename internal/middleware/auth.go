package middleware

import (
	"strings"

	"skilltree_backend/internal/config"
	"skilltree_backend/internal/service"
	"skilltree_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 双通道认证：优先 cookie 会话，其次 Bearer JWT。
// 两者都没有按未认证处理。
func AuthMiddleware(cfg *config.Config, authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 提供方会话 cookie
		if cookie, err := c.Cookie(cfg.Session.CookieName); err == nil && cookie != "" {
			user, err := authService.ResolveSessionToken(cookie)
			if err != nil {
				util.HandleServiceError(c, err)
				c.Abort()
				return
			}
			c.Set("user", user)
			c.Next()
			return
		}

		// 2. Bearer JWT
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		user, err := authService.ResolveBearerToken(tokenString)
		if err != nil {
			util.HandleServiceError(c, err)
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// AdminMiddleware 管理端接口的 admin 标记门禁，挂在 AuthMiddleware 之后
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		if !user.Admin {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
