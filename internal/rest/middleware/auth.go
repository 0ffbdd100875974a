package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/picshare/internal/pkg/token"
)

// ContextAccountID 认证通过后写入 gin.Context 的账号ID, 类型为 int64
const ContextAccountID = "account_id"

// parseToken 从 Authorization header 中解析 token
func parseToken(c *gin.Context, secret []byte) (*token.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errors.New("missing authorization header")
	}

	// 验证格式: Bearer <token>
	tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || tokenString == "" {
		return nil, errors.New("invalid authorization format")
	}

	return token.Parse(secret, tokenString)
}

// AuthMiddleware 必须携带有效的 token
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		claims, err := parseToken(c, key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
			return
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Next()
	}
}

// OptionalAuth 有 token 时解析, 没有或无效时按匿名用户处理
func OptionalAuth(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		if claims, err := parseToken(c, key); err == nil {
			c.Set(ContextAccountID, claims.AccountID)
		}
		c.Next()
	}
}
