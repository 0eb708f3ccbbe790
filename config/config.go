package config

import (
	"dao/core"

	configUtil "github.com/fox-one/pkg/config"
	"github.com/fox-one/pkg/store/db"
)

// Load load config file, an empty file name keeps env vars and defaults only
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("DAO")

	if configFile != "" {
		if err := configUtil.LoadYaml(configFile, config); err != nil {
			return err
		}
	}

	defaults(config)
	return nil
}

func defaults(cfg *core.Config) {
	if cfg.App.Location == "" {
		cfg.App.Location = "UTC"
	}

	if cfg.DB.Dialect == "" {
		cfg.DB = db.SqliteInMemory()
	}

	if cfg.Cache.Size <= 0 {
		cfg.Cache.Size = 1024
	}

	if cfg.Cache.Expiration == "" {
		cfg.Cache.Expiration = "10m"
	}

	if cfg.Notifier.Schedule == "" {
		cfg.Notifier.Schedule = "@every 1s"
	}

	if cfg.Notifier.Batch <= 0 {
		cfg.Notifier.Batch = 100
	}

	if cfg.Notifier.Grace == "" {
		cfg.Notifier.Grace = "1m"
	}
}
