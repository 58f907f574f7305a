package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mergington-activities/config"
	"mergington-activities/internal/global/sentry/tracing"

	"github.com/glebarez/sqlite"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open 按配置打开数据库连接，调用方负责持有并传递返回的 *gorm.DB
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.Database)
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{
		TranslateError: true,
	}
	switch cfg.Mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	default:
		gormConfig.Logger = logger.Discard
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, err
	}

	if cfg.Database.Driver == config.DriverSqlite {
		// sqlite 单写者，单连接避免 database is locked
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if cfg.Sentry.Dsn != "" {
		threshold := time.Duration(cfg.Sentry.Tracing.DBSlowThresholdMs) * time.Millisecond
		if err := db.Use(tracing.NewGormPlugin(threshold)); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func dialectorFor(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSqlite, "":
		dsn, err := SqliteDSN(cfg.Path)
		if err != nil {
			return nil, err
		}
		return sqlite.Open(dsn), nil
	case config.DriverMysql:
		return mysql.Open(MysqlDSN(cfg.Mysql)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// SqliteDSN 创建数据库文件所在目录，并打开外键约束
func SqliteDSN(path string) (string, error) {
	if path == "" {
		path = "data/app.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", nil
}

func MysqlDSN(cfg config.Mysql) string {
	c := mysqldriver.NewConfig()
	c.User = cfg.Username
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = cfg.Host + ":" + cfg.Port
	c.DBName = cfg.DBName
	c.ParseTime = true
	c.Loc = time.Local
	c.Params = map[string]string{"charset": "utf8mb4"}
	return c.FormatDSN()
}
