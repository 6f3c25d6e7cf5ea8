package api

import (
	"Keystone/internal/api/middleware"
	"Keystone/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		apiGroup.POST("/auth/revoke", middleware.AuthMiddleware(), group.AuthHandler.Revoke)

		profileGroup := apiGroup.Group("/profiles")
		{
			profileGroup.GET("/:user_id", group.ProfileHandler.GetProfile)

			authGroup := profileGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.ProfileHandler.Register)
				authGroup.PUT("/:user_id", group.ProfileHandler.Update)
				authGroup.PUT("/:user_id/tip-enabled", group.ProfileHandler.SetTipEnabled)
			}
		}

		followGroup := apiGroup.Group("/follows")
		{
			followGroup.GET("/:follower_id/:following_id", group.UserFollowHandler.IsFollowing)

			authGroup := followGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.UserFollowHandler.Follow)
				authGroup.DELETE("", group.UserFollowHandler.Unfollow)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("/:post_id", group.PostHandler.GetPost)
			postGroup.GET("/:post_id/interactions/:user_id", group.PostActionHandler.GetInteraction)

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.POST("/:post_id/like", group.PostActionHandler.LikePost)
				authGroup.DELETE("/:post_id/like", group.PostActionHandler.CancelLikePost)
				authGroup.POST("/:post_id/bookmark", group.PostActionHandler.BookmarkPost)
				authGroup.DELETE("/:post_id/bookmark", group.PostActionHandler.CancelBookmarkPost)
			}
		}

		tipGroup := apiGroup.Group("/tips")
		{
			tipGroup.GET("/quote", group.TipHandler.Quote)
			tipGroup.POST("", middleware.AuthMiddleware(), group.TipHandler.Tip)
		}

		notificationGroup := apiGroup.Group("/notifications")
		{
			notificationGroup.GET("/ws", group.WSHandler.Connect)

			authGroup := notificationGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("", group.NotificationHandler.GetNotificationList)
				authGroup.GET("/unread", group.NotificationHandler.GetUnreadCount)
				authGroup.POST("/read", group.NotificationHandler.MarkRead)
				authGroup.POST("/read/all", group.NotificationHandler.MarkAllRead)
			}
		}

		// 需要登录 & 调用者为手续费收款人
		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminOnly(group.AdminService))
		{
			adminGroup.GET("/settings", group.AdminHandler.GetSettings)
			adminGroup.PUT("/fee-rate", group.AdminHandler.SetFeeRate)
			adminGroup.PUT("/min-tip", group.AdminHandler.SetMinTip)
			adminGroup.PUT("/fee-collector", group.AdminHandler.SetFeeCollector)
			adminGroup.PUT("/profiles/:user_id/status", group.AdminHandler.SetProfileStatus)
			adminGroup.PUT("/posts/:post_id/status", group.AdminHandler.SetPostStatus)
		}
	}

	return r
}
