package kafka

import (
	"Keystone/internal/pkg/consts"
	"Keystone/internal/pkg/redis"
	"context"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
)

// HashWriter 计数投影的写入端
type HashWriter interface {
	WriteHash(ctx context.Context, key string, fields map[string]any) error
}

type redisHashWriter struct{}

func (redisHashWriter) WriteHash(ctx context.Context, key string, fields map[string]any) error {
	return redis.HSetFields(ctx, key, fields)
}

// CounterHandler 把档案、帖子计数与全局设置投影到 Redis 哈希
type CounterHandler struct {
	writer HashWriter
}

func NewCounterHandler(writer HashWriter) *CounterHandler {
	if writer == nil {
		writer = redisHashWriter{}
	}
	return &CounterHandler{writer: writer}
}

func (s *CounterHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("ledger counter consumer setup")
	return nil
}

func (s *CounterHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("ledger counter consumer cleanup")
	return nil
}

func (s *CounterHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("ledger counter process batch error", "err", err)
		return err
	}
	return nil
}

func (s *CounterHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := ToLedgerEvent(msg)
	if err != nil || event == nil {
		return nil
	}
	return s.apply(ctx, event)
}

// apply 写入的都是提交后的绝对值，重复消费结果不变
func (s *CounterHandler) apply(ctx context.Context, event *LedgerEvent) error {
	cs := event.Change
	for _, p := range cs.Profiles {
		err := s.writer.WriteHash(ctx, consts.ProfileCounterKey+p.UserID, map[string]any{
			"follower_count":  p.FollowerCount,
			"following_count": p.FollowingCount,
			"post_count":      p.PostCount,
			"tips_received":   p.TipsReceived,
			"status":          p.Status.String(),
		})
		if err != nil {
			return err
		}
	}
	for _, p := range cs.Posts {
		err := s.writer.WriteHash(ctx, consts.PostCounterKey+strconv.FormatUint(p.ID, 10), map[string]any{
			"like_count":    p.LikeCount,
			"reply_count":   p.ReplyCount,
			"tips_received": p.TipsReceived,
			"status":        p.Status.String(),
		})
		if err != nil {
			return err
		}
	}
	if cs.Settings != nil {
		err := s.writer.WriteHash(ctx, consts.LedgerSettingsKey, map[string]any{
			"fee_rate":      cs.Settings.FeeRate,
			"min_tip":       cs.Settings.MinTip,
			"fee_collector": cs.Settings.FeeCollector,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
