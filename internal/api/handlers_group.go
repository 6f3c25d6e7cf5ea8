package api

import (
	"Keystone/internal/api/handler"
	"Keystone/internal/service"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	AuthHandler         *handler.AuthHandler
	ProfileHandler      *handler.ProfileHandler
	UserFollowHandler   *handler.UserFollowHandler
	PostHandler         *handler.PostHandler
	PostActionHandler   *handler.PostActionHandler
	TipHandler          *handler.TipHandler
	NotificationHandler *handler.NotificationHandler
	AdminHandler        *handler.AdminHandler
	WSHandler           *handler.WsHandler

	// 管理员校验依赖账本当前的手续费收款人
	AdminService service.AdminService
}
