// Package config 提供 TOML 配置加载、环境变量覆盖与 schema 校验
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config 基础配置结构
type Config struct {
	// 服务名称
	ServiceName string `mapstructure:"service_name"`
	// 服务版本
	Version string `mapstructure:"version"`
	// 环境：dev, staging, prod
	Environment string `mapstructure:"environment"`
	// HTTP 服务配置
	HTTP HTTPConfig `mapstructure:"http"`
	// 数据库配置
	Database DatabaseConfig `mapstructure:"database"`
	// Redis 配置
	Redis RedisConfig `mapstructure:"redis"`
	// Kafka 配置
	Kafka KafkaConfig `mapstructure:"kafka"`
	// 日志配置
	Logger LoggerConfig `mapstructure:"logger"`
	// 指标配置
	Metrics MetricsConfig `mapstructure:"metrics"`
	// 鉴权配置
	Auth AuthConfig `mapstructure:"auth"`
	// 费用配置
	Fees FeesConfig `mapstructure:"fees"`
	// 通知配置
	Notification NotificationConfig `mapstructure:"notification"`
	// 文案生成配置
	Copywriter CopywriterConfig `mapstructure:"copywriter"`
	// 快照镜像配置
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
}

// HTTPConfig HTTP 服务配置
type HTTPConfig struct {
	// 监听地址
	Host string `mapstructure:"host" default:"0.0.0.0"`
	// 监听端口
	Port int `mapstructure:"port" default:"8080"`
	// 读超时（秒）
	ReadTimeout int `mapstructure:"read_timeout" default:"30"`
	// 写超时（秒）
	WriteTimeout int `mapstructure:"write_timeout" default:"30"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// 驱动：mysql
	Driver string `mapstructure:"driver" default:"mysql"`
	// 数据源名称
	DSN string `mapstructure:"dsn"`
	// 最大连接数
	MaxOpenConns int `mapstructure:"max_open_conns" default:"25"`
	// 最大空闲连接数
	MaxIdleConns int `mapstructure:"max_idle_conns" default:"5"`
	// 连接最大生命周期（秒）
	ConnMaxLifetime int `mapstructure:"conn_max_lifetime" default:"300"`
	// 是否启用日志
	LogEnabled bool `mapstructure:"log_enabled" default:"false"`
	// 慢查询阈值（毫秒）
	SlowQueryThreshold int `mapstructure:"slow_query_threshold" default:"1000"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	// 主机地址
	Host string `mapstructure:"host" default:"localhost"`
	// 端口
	Port int `mapstructure:"port" default:"6379"`
	// 密码
	Password string `mapstructure:"password"`
	// 数据库编号
	DB int `mapstructure:"db" default:"0"`
	// 最大连接数
	MaxPoolSize int `mapstructure:"max_pool_size" default:"10"`
	// 连接超时（秒）
	ConnTimeout int `mapstructure:"conn_timeout" default:"5"`
	// 读超时（秒）
	ReadTimeout int `mapstructure:"read_timeout" default:"3"`
	// 写超时（秒）
	WriteTimeout int `mapstructure:"write_timeout" default:"3"`
}

// KafkaConfig Kafka 配置
type KafkaConfig struct {
	// Broker 地址列表
	Brokers []string `mapstructure:"brokers"`
	// 订单事件主题
	OrderTopic string `mapstructure:"order_topic" default:"marketplace.orders"`
	// 最大重试次数（仅限网络层写入）
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// 重试退避（毫秒）
	RetryBackoff int `mapstructure:"retry_backoff" default:"100"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	// 日志级别
	Level string `mapstructure:"level" default:"info"`
	// 输出格式
	Format string `mapstructure:"format" default:"json"`
	// 输出目标
	Output string `mapstructure:"output" default:"stdout"`
	// 文件路径
	FilePath string `mapstructure:"file_path" default:"logs/marketplace.log"`
	// 最大文件大小（MB）
	MaxSize int `mapstructure:"max_size" default:"100"`
	// 最大备份文件数
	MaxBackups int `mapstructure:"max_backups" default:"10"`
	// 最大保留天数
	MaxAge int `mapstructure:"max_age" default:"30"`
	// 是否压缩
	Compress bool `mapstructure:"compress" default:"true"`
	// 是否输出调用者信息
	WithCaller bool `mapstructure:"with_caller" default:"true"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	// 是否启用
	Enabled bool `mapstructure:"enabled" default:"true"`
	// 指标路径
	Path string `mapstructure:"path" default:"/metrics"`
}

// AuthConfig 鉴权配置
type AuthConfig struct {
	// JWT 签名密钥
	JWTSecret string `mapstructure:"jwt_secret"`
	// Token 有效期（小时）
	TokenTTL int `mapstructure:"token_ttl" default:"72"`
}

// FeesConfig 费用配置，金额单位为最小货币单位
type FeesConfig struct {
	// 每个卖家订单的固定配送费（DELIVERY 时计入买家总价）
	DeliveryFee int64 `mapstructure:"delivery_fee" default:"150"`
	// 每个订单记录的固定平台费（不计入买家总价）
	PlatformFee int64 `mapstructure:"platform_fee" default:"50"`
	// 卖家仪表盘的平台抽佣比例
	CommissionRate string `mapstructure:"commission_rate" default:"0.025"`
}

// NotificationConfig 通知配置
type NotificationConfig struct {
	// 应用内提示的展示时长（毫秒）
	ToastTTLMillis int `mapstructure:"toast_ttl_ms" default:"8000"`
	// 遗留卖家标识别名表：别名 -> 实际卖家 ID
	Aliases map[string]string `mapstructure:"aliases"`
	// 提示音回调地址（为空则不播放）
	ChimeURL string `mapstructure:"chime_url"`
	// 桌面通知 webhook 地址
	DesktopWebhookURL string `mapstructure:"desktop_webhook_url"`
	// 桌面通知权限：default, granted, denied
	DesktopPermission string `mapstructure:"desktop_permission" default:"default"`
}

// CopywriterConfig 文案生成配置
type CopywriterConfig struct {
	// 生成接口地址
	Endpoint string `mapstructure:"endpoint"`
	// API 密钥
	APIKey string `mapstructure:"api_key"`
	// 请求超时（秒）
	Timeout int `mapstructure:"timeout" default:"30"`
	// 失败时的固定回退文案
	Fallback string `mapstructure:"fallback" default:"A quality product from our bazaar sellers."`
}

// SnapshotConfig 快照镜像配置
type SnapshotConfig struct {
	// 存储键前缀
	KeyPrefix string `mapstructure:"key_prefix" default:"marketplace"`
}

// Load 从 TOML 文件加载配置，支持环境变量覆盖
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}
	if c.Environment == "" {
		c.Environment = "dev"
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTP.Port)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth jwt_secret is required")
	}
	if c.Fees.DeliveryFee < 0 || c.Fees.PlatformFee < 0 {
		return fmt.Errorf("fees must not be negative")
	}
	switch c.Notification.DesktopPermission {
	case "", "default", "granted", "denied":
	default:
		return fmt.Errorf("invalid desktop_permission: %s", c.Notification.DesktopPermission)
	}
	return nil
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 30)
	v.SetDefault("http.write_timeout", 30)

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 300)
	v.SetDefault("database.log_enabled", false)
	v.SetDefault("database.slow_query_threshold", 1000)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.max_pool_size", 10)
	v.SetDefault("redis.conn_timeout", 5)
	v.SetDefault("redis.read_timeout", 3)
	v.SetDefault("redis.write_timeout", 3)

	v.SetDefault("kafka.order_topic", "marketplace.orders")
	v.SetDefault("kafka.max_retries", 3)
	v.SetDefault("kafka.retry_backoff", 100)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.file_path", "logs/marketplace.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 10)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.with_caller", true)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("auth.token_ttl", 72)

	v.SetDefault("fees.delivery_fee", 150)
	v.SetDefault("fees.platform_fee", 50)
	v.SetDefault("fees.commission_rate", "0.025")

	v.SetDefault("notification.toast_ttl_ms", 8000)
	v.SetDefault("notification.desktop_permission", "default")
	// 种子店铺沿用的遗留卖家 ID，默认保留其自身别名
	v.SetDefault("notification.aliases", map[string]string{"seller-demo-001": "seller-demo-001"})

	v.SetDefault("copywriter.timeout", 30)
	v.SetDefault("copywriter.fallback", "A quality product from our bazaar sellers.")

	v.SetDefault("snapshot.key_prefix", "marketplace")
}

// GetEnv 获取环境变量，支持默认值
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
