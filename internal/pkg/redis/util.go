package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// GetValue 获取字符串类型的值
func GetValue(ctx context.Context, key string) (string, error) {
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// HSetFields 批量写入哈希字段
func HSetFields(ctx context.Context, key string, fields map[string]any) error {
	return Rdb.HSet(ctx, key, fields).Err()
}

// SetCounters 在一个事务管道内覆盖多个计数器
func SetCounters(ctx context.Context, values map[string]int64) error {
	if len(values) == 0 {
		return nil
	}
	pipe := Rdb.TxPipeline()
	for key, v := range values {
		pipe.Set(ctx, key, v, 0)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Publish 向频道发布消息
func Publish(ctx context.Context, channel string, message any) error {
	return Rdb.Publish(ctx, channel, message).Err()
}

// Subscribe 订阅频道，调用方负责关闭
func Subscribe(ctx context.Context, channels ...string) *redis.PubSub {
	return Rdb.Subscribe(ctx, channels...)
}
