package config

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

// Config 环境变量统一带 APP_ 前缀，按结构层级拼接，例如 APP_DATABASE_PATH
// 不要给字段加 envconfig:"X" 标签，envconfig 会在前缀变量缺失时回退到裸变量名（PATH、USERNAME 等）
type Config struct {
	Host     string
	Port     string
	Prefix   string
	Mode     Mode
	Storage  Storage
	Database Database
	Redis    Redis
	JWT      JWT
	Log      Log `mapstructure:"Log"`
	Sentry   Sentry
	Webhook  Webhook
}

type Storage struct {
	Static string // 前端静态文件目录
}

const (
	DriverSqlite = "sqlite"
	DriverMysql  = "mysql"
)

type Database struct {
	Driver string // sqlite 或 mysql
	Path   string // sqlite 数据库文件
	Mysql  Mysql
}

type Mysql struct {
	Host     string
	Port     string
	Username string
	Password string
	DBName   string `split_words:"true" mapstructure:"db_name"`
}

type Redis struct {
	Host     string
	Port     string
	Password string
	DB       int
	LockTTL  int `split_words:"true" mapstructure:"lock_ttl"` // 报名锁过期时间（毫秒）
}

type JWT struct {
	AccessSecret string `split_words:"true" mapstructure:"access_secret"`
	AccessExpire int64  `split_words:"true" mapstructure:"access_expire"` // 秒
}

type Log struct {
	FilePath   string `split_words:"true" mapstructure:"file_path"`   // 日志文件路径
	Level      string `mapstructure:"level"`                          // 日志级别：debug, info, warn, error
	MaxSize    int    `split_words:"true" mapstructure:"max_size"`    // 日志文件最大大小（MB）
	MaxBackups int    `split_words:"true" mapstructure:"max_backups"` // 保留的旧日志文件数
	MaxAge     int    `split_words:"true" mapstructure:"max_age"`     // 日志文件保留天数
	Compress   bool   `mapstructure:"compress"`                       // 是否压缩旧日志文件
}

type Sentry struct {
	Dsn         string
	Environment string
	SampleRate  float64 `split_words:"true" mapstructure:"sample_rate"`
	Tracing     SentryTracing
}

type SentryTracing struct {
	DBSlowThresholdMs int `split_words:"true" mapstructure:"db_slow_threshold_ms"`
}

type Webhook struct {
	URL        string
	TimeoutMs  int `split_words:"true" mapstructure:"timeout_ms"`
	RetryCount int `split_words:"true" mapstructure:"retry_count"`
}
