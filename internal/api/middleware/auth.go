package middleware

import (
	"Keystone/internal/pkg/consts"
	"Keystone/internal/pkg/redis"
	"Keystone/internal/pkg/response"
	"Keystone/internal/pkg/security"
	"context"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// 吊销 Token 时使用
const (
	TokenSignatureKey = "token_signature"
	TokenExpiresAtKey = "token_expires_at"
)

// AuthMiddleware 负责验证 JWT 并将调用者身份注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		if redis.Enabled() {
			value, err := redis.GetValue(c.Request.Context(), consts.TokenRevokedKey+signature)
			if err != nil {
				log.ErrorContext(c.Request.Context(), "check token revoked error", "err", err)
				response.Fail(c, response.InternalServerError, "未知错误")
				c.Abort()
				return
			}
			if value != "" {
				response.Fail(c, response.Unauthorized, "Token 无效或已过期")
				c.Abort()
				return
			}
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		c.Set(consts.PrincipalKey, claims.Principal)
		c.Set(TokenSignatureKey, signature)
		if claims.ExpiresAt != nil {
			c.Set(TokenExpiresAtKey, claims.ExpiresAt.Time)
		}

		newCtx := context.WithValue(c.Request.Context(), consts.PrincipalKey, claims.Principal)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
