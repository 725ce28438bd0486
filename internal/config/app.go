package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/haven/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"HAVEN_RUNTIME_PATH" envDefault:".haven"`
	// Store selects the persistence backend: sqlite, postgres or memory.
	Store       string `env:"HAVEN_STORE" envDefault:"sqlite"`
	DatabaseURL string `env:"HAVEN_DATABASE_URL"`
	UserID      string `env:"HAVEN_USER_ID" envDefault:"default"`

	MaintenanceSchedule string `env:"HAVEN_MAINTENANCE_SCHEDULE" envDefault:"@daily"`
}

func LoadAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c, nil
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := LoadAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "haven.db")
}

func (c AppConfig) GetDatabaseURL() string {
	return c.DatabaseURL
}

func (c AppConfig) GetStoreDriver() string {
	return c.Store
}

func (c AppConfig) GetUserID() string {
	return c.UserID
}

func (c AppConfig) GetMaintenanceSchedule() string {
	return c.MaintenanceSchedule
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}
