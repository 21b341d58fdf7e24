package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Storage drivers selectable via STORAGE_DRIVER
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type ServerCfg struct {
	Port            int `env:"HTTP_PORT" envDefault:"3000"`
	ShutdownTimeout int `env:"HTTP_SHUTDOWN_TIMEOUT_SECONDS" envDefault:"10"`
}

type StorageCfg struct {
	Driver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	// SeedDemoData loads the synthetic demo dataset on boot, memory driver only
	SeedDemoData bool `env:"SEED_DEMO_DATA" envDefault:"true"`
}

type PostgresCfg struct {
	User        string `env:"POSTGRES_USER"`
	Password    string `env:"POSTGRES_PASSWORD"`
	Host        string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port        int    `env:"POSTGRES_PORT" envDefault:"5432"`
	Database    string `env:"POSTGRES_DB"`
	SslMode     string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	PoolMaxConn int    `env:"POSTGRES_POOL_MAX_CONN" envDefault:"100"`
}

type MongoCfg struct {
	// URI is empty when activities should stay in the primary store
	URI         string `env:"MONGO_URI"`
	Database    string `env:"MONGO_DB" envDefault:"crm"`
	MaxPoolSize int    `env:"MONGO_MAX_POOL_SIZE" envDefault:"100"`
}

type RedisCfg struct {
	// Addr is empty when customer reads should skip caching
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type Config struct {
	ServerCfg   ServerCfg
	StorageCfg  StorageCfg
	PostgresCfg PostgresCfg
	MongoCfg    MongoCfg
	RedisCfg    RedisCfg
}

// Build reads configuration from environment. Postgres credentials are
// required only when the postgres driver is selected.
func Build() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}

	if cfg.StorageCfg.Driver != DriverMemory && cfg.StorageCfg.Driver != DriverPostgres {
		return cfg, fmt.Errorf("unknown storage driver %q", cfg.StorageCfg.Driver)
	}

	if cfg.StorageCfg.Driver == DriverPostgres {
		if cfg.PostgresCfg.User == "" || cfg.PostgresCfg.Database == "" {
			return cfg, fmt.Errorf("postgres driver requires POSTGRES_USER and POSTGRES_DB")
		}
	}

	return cfg, nil
}
