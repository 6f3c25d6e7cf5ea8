package kafka

import (
	"Keystone/internal/pkg/consts"
	"Keystone/internal/pkg/mongo"
	"Keystone/internal/pkg/redis"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// NotificationPusher 未读数与实时推送
type NotificationPusher interface {
	SetUnread(ctx context.Context, userID string, count int64) error
	Push(ctx context.Context, userID string, payload []byte) error
}

type redisPusher struct{}

func (redisPusher) SetUnread(ctx context.Context, userID string, count int64) error {
	return redis.SetCounters(ctx, map[string]int64{consts.NotificationUnreadKey + userID: count})
}

func (redisPusher) Push(ctx context.Context, userID string, payload []byte) error {
	return redis.Publish(ctx, consts.NotificationChannelPrefix+userID, payload)
}

// NotificationHandler 把通知镜像到 Mongo sys_box，刷新 Redis 未读数并推送给在线用户
type NotificationHandler struct {
	sysBoxRepo mongo.SysBoxRepo
	pusher     NotificationPusher
}

func NewNotificationHandler(sysBoxRepo mongo.SysBoxRepo, pusher NotificationPusher) *NotificationHandler {
	if pusher == nil {
		pusher = redisPusher{}
	}
	return &NotificationHandler{sysBoxRepo: sysBoxRepo, pusher: pusher}
}

func (s *NotificationHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("notification consumer setup")
	return nil
}

func (s *NotificationHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("notification consumer cleanup")
	return nil
}

func (s *NotificationHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("notification process batch error", "err", err)
		return err
	}
	return nil
}

func (s *NotificationHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := ToLedgerEvent(msg)
	if err != nil || event == nil {
		return nil
	}
	return s.apply(ctx, event)
}

func (s *NotificationHandler) apply(ctx context.Context, event *LedgerEvent) error {
	notifications := event.Change.Notifications
	if len(notifications) == 0 {
		return nil
	}

	touched := make(map[string]struct{})
	for _, n := range notifications {
		doc := mongo.NewSysBoxModel(n)
		if err := s.sysBoxRepo.UpsertNotification(ctx, doc); err != nil {
			return err
		}
		touched[n.RecipientID] = struct{}{}

		// 通知只会从未读变为已读，未读即新产生
		if n.IsRead {
			continue
		}
		payload, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		if err = s.pusher.Push(ctx, n.RecipientID, payload); err != nil {
			log.WarnContext(ctx, "push notification failed", "recipient_id", n.RecipientID, "err", err)
		}
	}

	for userID := range touched {
		count, err := s.sysBoxRepo.GetUnreadCount(ctx, userID)
		if err != nil {
			return err
		}
		if err = s.pusher.SetUnread(ctx, userID, count); err != nil {
			return err
		}
	}
	return nil
}
