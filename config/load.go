package config

import (
	"errors"
	"os"
	"sync"

	"github.com/kelseyhightower/envconfig"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 APP_PORT、APP_DATABASE_DRIVER
const EnvPrefix = "APP"

var (
	instance *Config
	mu       sync.RWMutex
)

// Default 返回默认配置，未提供配置文件时也能直接启动
func Default() *Config {
	return &Config{
		Host:   "0.0.0.0",
		Port:   "8000",
		Mode:   ModeDebug,
		Prefix: "",
		Storage: Storage{
			Static: "static",
		},
		Database: Database{
			Driver: DriverSqlite,
			Path:   "data/app.db",
			Mysql: Mysql{
				Host: "127.0.0.1",
				Port: "3306",
			},
		},
		Redis: Redis{
			Port:    "6379",
			LockTTL: 5000,
		},
		JWT: JWT{
			AccessExpire: 7 * 24 * 3600,
		},
		Log: Log{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     30,
		},
		Webhook: Webhook{
			TimeoutMs:  3000,
			RetryCount: 2,
		},
	}
}

// Load 依次合并 默认值 -> 配置文件 -> 环境变量
// path 为空或文件不存在时跳过配置文件
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v := viper.New()
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, pkgerrors.Wrapf(err, "read config %s", path)
			}
			if err := v.Unmarshal(cfg); err != nil {
				return nil, pkgerrors.Wrapf(err, "decode config %s", path)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, pkgerrors.WithStack(err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, pkgerrors.Wrap(err, "process env")
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverSqlite
	}
	return cfg, nil
}

// Init 从 CONFIG_PATH（默认 config.yaml）加载全局配置
func Init() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	Set(cfg)
}

// Set 替换全局配置
func Set(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = cfg
}

// Get 获取全局配置，未初始化时返回默认配置
func Get() *Config {
	mu.RLock()
	cfg := instance
	mu.RUnlock()
	if cfg != nil {
		return cfg
	}

	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = Default()
	}
	return instance
}
