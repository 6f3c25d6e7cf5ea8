package kafka

import (
	"Keystone/internal/api/config"
	"Keystone/internal/pkg/mongo"
	"context"
	log "log/slog"
	"sync"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	counterConsumer sarama.ConsumerGroup
	counterHandler  sarama.ConsumerGroupHandler

	notificationConsumer sarama.ConsumerGroup
	notificationHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, sysBoxRepo mongo.SysBoxRepo) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	counterConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaCounterConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	notificationConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaNotificationConsumer.GroupID, saramaCfg)
	if err != nil {
		_ = counterConsumer.Close()
		return nil, err
	}

	return &ConsumerManager{
		counterConsumer:      counterConsumer,
		counterHandler:       NewCounterHandler(nil),
		notificationConsumer: notificationConsumer,
		notificationHandler:  NewNotificationHandler(sysBoxRepo, nil),
	}, nil
}

// Start 启动所有消费者，阻塞到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	var wg sync.WaitGroup
	run := func(name, topic string, group sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler) {
		defer wg.Done()
		log.Info("Kafka consumer started", "name", name, "topic", topic)
		for {
			if err := group.Consume(ctx, []string{topic}, handler); err != nil {
				log.Error("Error from consumer", "name", name, "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}

	wg.Add(2)
	go run("counter", cfg.KafkaCounterConsumer.Topic, m.counterConsumer, m.counterHandler)
	go run("notification", cfg.KafkaNotificationConsumer.Topic, m.notificationConsumer, m.notificationHandler)

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.counterConsumer.Close(); err != nil {
		log.Error("Failed to close counter consumer", "err", err)
	}
	if err := m.notificationConsumer.Close(); err != nil {
		log.Error("Failed to close notification consumer", "err", err)
	}
	wg.Wait()

	return nil
}
