package handler

import (
	"Keystone/internal/api/middleware"
	"Keystone/internal/pkg/consts"
	"Keystone/internal/pkg/redis"
	"Keystone/internal/pkg/response"
	"Keystone/internal/service"
	"time"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Revoke 吊销当前 Token，黑名单保留到 Token 自然过期
func (s *AuthHandler) Revoke(c *gin.Context) {
	if !redis.Enabled() {
		response.Error(c, service.UnExpectedError)
		return
	}
	signature := c.GetString(middleware.TokenSignatureKey)
	ttl := time.Until(c.GetTime(middleware.TokenExpiresAtKey))
	if ttl <= 0 {
		ttl = time.Hour
	}
	if err := redis.SetWithExpiration(c.Request.Context(), consts.TokenRevokedKey+signature, caller(c), ttl); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
