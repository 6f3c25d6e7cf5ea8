package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret         = []byte("keystone-dev-secret")
	jwtIssuer         = "Keystone"
	JWTExpirationTime = time.Hour * 24
)

// Init 用配置覆盖签名密钥、签发者与有效期
func Init(secret, issuer string, expirationHours int) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if issuer != "" {
		jwtIssuer = issuer
	}
	if expirationHours > 0 {
		JWTExpirationTime = time.Duration(expirationHours) * time.Hour
	}
}

// PrincipalClaims Token 中携带调用者的认证主体
type PrincipalClaims struct {
	Principal string `json:"principal"`
	jwt.RegisteredClaims
}
