package kafka

import (
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

const (
	batchSize    = 32
	batchTimeout = 1 * time.Second
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch 拉取一批消息并执行业务逻辑
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				if len(batch) > 0 {
					flushBatch(session, batch, logic)
				}
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				flushBatch(session, batch, logic)
				// 清空缓冲区 & 重置定时器
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				flushBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// flushBatch 处理完整批消息后才提交位点
func flushBatch(session sarama.ConsumerGroupSession, batch []*sarama.ConsumerMessage, logic LogicFunc) {
	processBatch(session.Context(), batch, logic)
	if session.Context().Err() != nil {
		return
	}
	session.MarkMessage(batch[len(batch)-1], "")
}

// processBatch 按消息 key 分组：同一 key 内严格按 offset 顺序执行，不同 key 之间并发
func processBatch(ctx context.Context, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	groups := make(map[string][]*sarama.ConsumerMessage)
	var order []string
	for _, msg := range messages {
		key := string(msg.Key)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], msg)
	}

	var wg sync.WaitGroup
	for _, key := range order {
		wg.Add(1)
		go func(msgs []*sarama.ConsumerMessage) {
			defer wg.Done()
			for _, m := range msgs {
				if !retryUntilDone(ctx, m, logic) {
					return
				}
			}
		}(groups[key])
	}

	wg.Wait()
}

// retryUntilDone 失败后指数退避重试，ctx 结束时返回 false
func retryUntilDone(ctx context.Context, m *sarama.ConsumerMessage, logic LogicFunc) bool {
	var retryInterval = 100 * time.Millisecond

	for {
		err := logic(ctx, m)
		if err == nil {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		default:
		}

		log.Error("process message error", "err", err, "offset", m.Offset)
		time.Sleep(retryInterval)

		retryInterval *= 2
		if retryInterval > 5*time.Second {
			retryInterval = 5 * time.Second
		}
	}
}
