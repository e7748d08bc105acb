package config

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

type (
	Config struct {
		Host    string `mapstructure:"HOST"`
		Port    string `mapstructure:"PORT"`
		Storage string `mapstructure:"STORAGE"`
		DBPath  string `mapstructure:"DB_PATH"`
	}
)

func NewConfig() (*Config, error) {
	viper.SetEnvPrefix("COOKSHELF")

	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "1323")
	viper.SetDefault("STORAGE", StorageSQLite)
	viper.SetDefault("DB_PATH", "cookshelf.db")

	envs := []string{"HOST", "PORT", "STORAGE", "DB_PATH"}
	for _, key := range envs {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	validStorageValues := []string{StorageSQLite, StorageMemory}
	for _, validValue := range validStorageValues {
		if cfg.Storage == validValue {
			return nil
		}
	}
	return errors.New(fmt.Sprintf("storage mode is invalid: %s", cfg.Storage))
}
