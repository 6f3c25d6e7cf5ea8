package config

// Config 配置主体
type Config struct {
	Server                    ServerConfig        `mapstructure:"server"`
	DB                        DBConfig            `mapstructure:"database"`
	Redis                     RedisConfig         `mapstructure:"redis"`
	Mongo                     MongoConfig         `mapstructure:"mongo"`
	Logstash                  LogstashConfig      `mapstructure:"logstash"`
	JWT                       JWTConfig           `mapstructure:"jwt"`
	Ledger                    LedgerConfig        `mapstructure:"ledger"`
	Bank                      BankConfig          `mapstructure:"bank"`
	Cron                      CronConfig          `mapstructure:"cron"`
	Kafka                     KafkaConfig         `mapstructure:"kafka"`
	KafkaLedgerProducer       KafkaLedgerProducer `mapstructure:"kafka_ledger_producer"`
	KafkaCounterConsumer      KafkaConsumerConfig `mapstructure:"kafka_counter_consumer"`
	KafkaNotificationConsumer KafkaConsumerConfig `mapstructure:"kafka_notification_consumer"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置，DSN 为空时按字段拼接
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	Name        string `mapstructure:"name"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Issuer     string `mapstructure:"issuer"`
	Expiration int    `mapstructure:"expiration"` // 小时
}

// LedgerConfig 账本初始参数，仅在库中没有 settings 时生效
type LedgerConfig struct {
	Deployer         string `mapstructure:"deployer"`
	Escrow           string `mapstructure:"escrow"`
	FeeRate          uint64 `mapstructure:"fee_rate"`
	MinTip           uint64 `mapstructure:"min_tip"`
	MaxContentLength int    `mapstructure:"max_content_length"`
	DisplayDecimals  int32  `mapstructure:"display_decimals"`
	Journal          bool   `mapstructure:"journal"`
}

type BankConfig struct {
	Driver  string            `mapstructure:"driver"` // memory | mysql
	Genesis map[string]uint64 `mapstructure:"genesis"`
}

type CronConfig struct {
	LedgerAudit string `mapstructure:"ledger_audit"`
}

type KafkaConfig struct {
	Enable   bool           `mapstructure:"enable"`
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
}

type KafkaLedgerProducer struct {
	Topic string `mapstructure:"topic"`
}

type KafkaConsumerConfig struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
