// Package config loads and validates app config from the data directory's
// config.json and PITSTOP_* environment overrides using Viper.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// FileName is the config file inside the data directory.
const FileName = "config.json"

// Config holds application configuration.
type Config struct {
	// DataDir is where the local database and config live.
	DataDir string `mapstructure:"data_dir" json:"data_dir"`
	// ShopID is the tenant identifier stamped on every mirrored record.
	// Generated once by `pitstop init`.
	ShopID string `mapstructure:"shop_id" json:"shop_id,omitempty"`
	// MirrorDatabaseURL is the remote Postgres DSN; empty disables
	// replication entirely.
	MirrorDatabaseURL string `mapstructure:"mirror_database_url" json:"mirror_database_url,omitempty"`
	// ReplicationQueueSize bounds the replication work queue.
	ReplicationQueueSize int `mapstructure:"replication_queue_size" json:"replication_queue_size,omitempty"`
	// NotifyGatewayURL is the text-message gateway send endpoint; empty
	// disables outbound notices.
	NotifyGatewayURL string `mapstructure:"notify_gateway_url" json:"notify_gateway_url,omitempty"`
	// NotifyAPIKey authenticates against the gateway.
	NotifyAPIKey string `mapstructure:"notify_api_key" json:"notify_api_key,omitempty"`
}

// Load reads config.json from the data dir (if present), applies PITSTOP_*
// env overrides, and validates the result. A missing config file is fine:
// defaults plus environment are enough to run locally.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("shop_id", "")
	v.SetDefault("mirror_database_url", "")
	v.SetDefault("replication_queue_size", 64)
	v.SetDefault("notify_gateway_url", "")
	v.SetDefault("notify_api_key", "")

	v.SetEnvPrefix("PITSTOP")
	v.AutomaticEnv()

	dataDir := v.GetString("data_dir")
	v.SetConfigFile(filepath.Join(dataDir, FileName))
	v.SetConfigType("json")
	_ = v.ReadInConfig() // missing config.json is not an error

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	// Env override of data_dir wins over a value inside config.json.
	if envDir := os.Getenv("PITSTOP_DATA_DIR"); envDir != "" {
		cfg.DataDir = envDir
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config.json into the config's data dir.
func Save(cfg *Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	path := filepath.Join(cfg.DataDir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("config: data_dir must not be empty")
	}
	if c.ReplicationQueueSize < 1 {
		return fmt.Errorf("config: replication_queue_size must be at least 1")
	}
	if c.ShopID != "" {
		if _, err := uuid.Parse(c.ShopID); err != nil {
			return fmt.Errorf("config: shop_id is not a valid UUID: %w", err)
		}
	}
	return nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pitstop"
	}
	return filepath.Join(home, ".pitstop")
}
