package middleware

import (
	"Keystone/internal/pkg/consts"
	"Keystone/internal/pkg/response"
	"Keystone/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminOnly 调用者必须是当前手续费收款人
func AdminOnly(adminSvc service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := adminSvc.IsAdmin(c.Request.Context(), c.GetString(consts.PrincipalKey))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if !ok {
			response.Error(c, service.UnauthorizedError)
			c.Abort()
			return
		}
		c.Next()
	}
}
