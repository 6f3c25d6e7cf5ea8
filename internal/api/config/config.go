package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 30)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("mongo.url", "mongodb://127.0.0.1:27017")
	v.SetDefault("mongo.database", "keystone")
	v.SetDefault("logstash.index", "logstash-keystone")
	v.SetDefault("jwt.issuer", "Keystone")
	v.SetDefault("jwt.expiration", 24)
	v.SetDefault("ledger.deployer", "deployer")
	v.SetDefault("ledger.escrow", "keystone-escrow")
	v.SetDefault("ledger.fee_rate", 200)
	v.SetDefault("ledger.min_tip", 1)
	v.SetDefault("ledger.max_content_length", 1024)
	v.SetDefault("ledger.display_decimals", 6)
	v.SetDefault("ledger.journal", true)
	v.SetDefault("bank.driver", "mysql")
	v.SetDefault("cron.ledger_audit", "0 */10 * * * *")
	v.SetDefault("kafka.consumer.session_timeout", 30)
	v.SetDefault("kafka.consumer.heartbeat_interval", 3)
	v.SetDefault("kafka.consumer.rebalance_timeout", 60)
	v.SetDefault("kafka_ledger_producer.topic", "keystone.ledger.events")
	v.SetDefault("kafka_counter_consumer.topic", "keystone.ledger.events")
	v.SetDefault("kafka_counter_consumer.group_id", "keystone-counter")
	v.SetDefault("kafka_notification_consumer.topic", "keystone.ledger.events")
	v.SetDefault("kafka_notification_consumer.group_id", "keystone-notification")
}

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	v := viper.GetViper()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.SetEnvPrefix("KEYSTONE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return err
	}

	Cfg = &cfg

	return nil
}

func (c *Config) validate() error {
	if c.Ledger.Deployer == "" || c.Ledger.Escrow == "" {
		return errors.New("ledger.deployer and ledger.escrow are required")
	}
	if c.Ledger.Deployer == c.Ledger.Escrow {
		return errors.New("ledger.escrow must differ from ledger.deployer")
	}
	if c.Ledger.FeeRate > 1000 {
		return fmt.Errorf("ledger.fee_rate %d exceeds 1000", c.Ledger.FeeRate)
	}
	if c.Ledger.MinTip == 0 {
		return errors.New("ledger.min_tip must be positive")
	}
	if c.Ledger.MaxContentLength <= 0 {
		return errors.New("ledger.max_content_length must be positive")
	}
	switch c.Bank.Driver {
	case "memory", "mysql":
	default:
		return fmt.Errorf("unknown bank.driver %q", c.Bank.Driver)
	}
	return nil
}
