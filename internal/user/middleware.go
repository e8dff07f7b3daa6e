package user

import (
	"net/http"
	"strings"

	"github.com/SlpAus/football-pool-backend/pkg/envelope"
	"github.com/SlpAus/football-pool-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

// Gin上下文中存放当前用户信息的键
const (
	UserIDKey   = "userID"
	UsernameKey = "username"
	RolesKey    = "roles"
)

// AuthMiddleware 校验Authorization头中的Bearer Token，
// 并把解析出的用户信息放入Gin上下文。
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if header == "" || tokenString == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope.Fail("Access denied. No token provided."))
			return
		}

		claims, err := token.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope.Fail("Invalid token."))
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Set(RolesKey, claims.Roles)
		c.Next()
	}
}

// RequireAdmin 在AuthMiddleware之后使用，只放行携带管理员角色的请求。
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, _ := c.Get(RolesKey)
		if roleList, ok := roles.([]string); ok {
			for _, r := range roleList {
				if r == RoleAdmin {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, envelope.Fail("Administrator access required."))
	}
}

// CurrentUserID 从Gin上下文中取出当前用户的ID。
func CurrentUserID(c *gin.Context) uint {
	id, _ := c.Get(UserIDKey)
	userID, _ := id.(uint)
	return userID
}
