package kafka

import (
	"Keystone/internal/pkg/consts"
	"Keystone/internal/repository"
	"errors"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// LedgerEvent 每次提交的变更集发布到 Kafka 的消息体
type LedgerEvent struct {
	Version int                   `json:"version"`
	EventID string                `json:"eventId"`
	TraceID string                `json:"traceId,omitempty"`
	Change  *repository.ChangeSet `json:"change"`
}

// ToLedgerEvent 将kafka消息转换为账本事件
func ToLedgerEvent(msg *sarama.ConsumerMessage) (*LedgerEvent, error) {
	var event LedgerEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("unmarshal ledger event error", "err", err)
		return nil, err
	}

	if event.Version != consts.LedgerEventVersion {
		return nil, errors.New("ledger event version not supported")
	}

	if event.Change == nil {
		return nil, errors.New("change set is empty")
	}

	return &event, nil
}
