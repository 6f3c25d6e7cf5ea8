package kafka

import (
	"Keystone/internal/api/config"
	"Keystone/internal/pkg/consts"
	"Keystone/internal/pkg/logger"
	"Keystone/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// ledgerPartitionKey 所有事件共用一个键，保证消费端按提交顺序看到变更
const ledgerPartitionKey = "ledger"

// LedgerProducer 作为账本提交回调，把变更集异步发布到 Kafka
type LedgerProducer struct {
	producer sarama.AsyncProducer
	topic    string
	done     chan struct{}
}

func NewLedgerProducer(cfg *config.Config) (*LedgerProducer, error) {
	producer, err := sarama.NewAsyncProducer(cfg.Kafka.Brokers, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, err
	}
	return newLedgerProducer(producer, cfg.KafkaLedgerProducer.Topic), nil
}

func newLedgerProducer(producer sarama.AsyncProducer, topic string) *LedgerProducer {
	p := &LedgerProducer{
		producer: producer,
		topic:    topic,
		done:     make(chan struct{}),
	}
	go p.drainErrors()
	return p
}

func (p *LedgerProducer) drainErrors() {
	defer close(p.done)
	for perr := range p.producer.Errors() {
		log.Error("Kafka publish ledger event failed", "topic", perr.Msg.Topic, "err", perr.Err)
	}
}

func (p *LedgerProducer) AfterCommit(ctx context.Context, cs *repository.ChangeSet) {
	event := &LedgerEvent{
		Version: consts.LedgerEventVersion,
		EventID: uuid.NewString(),
		TraceID: logger.TraceID(ctx),
		Change:  cs,
	}
	value, err := json.Marshal(event)
	if err != nil {
		log.ErrorContext(ctx, "marshal ledger event error", "op", cs.Op, "err", err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(ledgerPartitionKey),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("op"), Value: []byte(cs.Op)},
			{Key: []byte("event_id"), Value: []byte(event.EventID)},
		},
	}

	// 在账本写锁内调用，缓冲区满时丢弃事件，不阻塞后续写入
	select {
	case p.producer.Input() <- msg:
	default:
		log.WarnContext(ctx, "Kafka producer buffer full, ledger event dropped",
			"op", cs.Op, "event_id", event.EventID)
	}
}

// Close 刷出缓冲中的消息后关闭
func (p *LedgerProducer) Close() error {
	p.producer.AsyncClose()
	<-p.done
	return nil
}
