package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Password PasswordConfig
	Shop     ShopConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AURUMPOS_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"AURUMPOS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AURUMPOS_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"AURUMPOS_AUTO_MIGRATE" default:"true"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Path string `envconfig:"AURUMPOS_DB_PATH" default:"data.db"`

	MaxOpenConns    int           `envconfig:"AURUMPOS_DB_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns    int           `envconfig:"AURUMPOS_DB_MAX_IDLE_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"AURUMPOS_DB_CONN_MAX_LIFETIME" default:"0"`
	BusyTimeout     time.Duration `envconfig:"AURUMPOS_DB_BUSY_TIMEOUT" default:"5s"`
}

// DSN builds the sqlite datasource string for the configured file.
func (d DBConfig) DSN() string {
	sep := "?"
	if strings.Contains(d.Path, "?") {
		sep = "&"
	}
	dsn := d.Path + sep + "_fk=1"
	if d.BusyTimeout > 0 {
		dsn += fmt.Sprintf("&_busy_timeout=%d", d.BusyTimeout.Milliseconds())
	}
	return dsn
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"AURUMPOS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"AURUMPOS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"AURUMPOS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"AURUMPOS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"AURUMPOS_ARGON_KEY_LEN" default:"32"`
}

// ShopConfig carries the till identity printed on receipts.
type ShopConfig struct {
	Name  string `envconfig:"AURUMPOS_SHOP_NAME" default:"AURUM"`
	Phone string `envconfig:"AURUMPOS_SHOP_PHONE"`
}
