package handler

import (
	"Keystone/internal/pkg/consts"
	"Keystone/internal/pkg/redis"
	"Keystone/internal/pkg/response"
	"Keystone/internal/pkg/security"
	"Keystone/internal/service"
	"context"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WsHandler 把 Redis 通知频道转发给在线用户
type WsHandler struct {
	profileSvc service.ProfileService
}

func NewWsHandler(profileSvc service.ProfileService) *WsHandler {
	return &WsHandler{profileSvc: profileSvc}
}

func (s *WsHandler) Connect(c *gin.Context) {
	// 浏览器无法设置 Header，Token 放在 query 中
	token := c.Query("token")
	if token == "" {
		response.Error(c, service.UnauthorizedError)
		return
	}
	claims, err := security.ValidateToken(token)
	if err != nil {
		log.WarnContext(c.Request.Context(), "ws auth failed", "err", err)
		response.Error(c, service.UnauthorizedError)
		return
	}

	userID := c.Query("user_id")
	profile, err := s.profileSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if profile.Owner != claims.Principal {
		response.Error(c, service.UnauthorizedError)
		return
	}
	if !redis.Enabled() {
		response.Error(c, service.UnExpectedError)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("ws upgrade failed", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	pubsub := redis.Subscribe(context.Background(), consts.NotificationChannelPrefix+userID)
	defer func() {
		_ = pubsub.Close()
	}()

	log.Info("ws connected", "user_id", userID)

	stopChan := make(chan struct{})

	// 读循环：监听客户端主动断开
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(stopChan)
				return
			}
		}
	}()

	redisCh := pubsub.Channel()
	for {
		select {
		case msg, ok := <-redisCh:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err = conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Error("ws push failed", "user_id", userID, "err", err)
				return
			}
		case <-stopChan:
			log.Info("ws disconnected", "user_id", userID)
			return
		}
	}
}
