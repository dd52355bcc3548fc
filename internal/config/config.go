// Package config loads the server's YAML configuration via viper, the way
// the teacher's internal/config.go does, narrowed to the fields this core
// actually uses: the data file path, page pool sizing, and listener
// settings.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the root configuration document, unmarshaled from a YAML file
// such as ringdb.yaml.
type Config struct {
	Storage struct {
		File     string `mapstructure:"file"`
		PageSize int    `mapstructure:"page_size"`
		PoolSize int    `mapstructure:"pool_size"`
	} `mapstructure:"storage"`
	Server struct {
		Port    int  `mapstructure:"port"`
		Debug   bool `mapstructure:"debug"`
		Workers int  `mapstructure:"workers"`
	} `mapstructure:"server"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{}
	cfg.Storage.File = "database.db"
	cfg.Storage.PageSize = 8192
	cfg.Storage.PoolSize = 64
	cfg.Server.Port = 5432
	cfg.Server.Debug = false
	cfg.Server.Workers = 0 // 0 means runtime.NumCPU()
	return cfg
}

// Load reads and unmarshals a YAML config file at path, falling back to
// Default() field-by-field for anything left unset.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return cfg, nil
}
