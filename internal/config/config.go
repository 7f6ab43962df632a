package config

import (
	"os"

	"callbreak-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the Call Break server
type Config struct {
	loaded bool

	// Addr is the default listen address
	Addr string `yaml:"addr" envconfig:"addr"`

	// RedisURL enables the Redis-backed broadcast fabric.
	// When empty, events only fan out within this process.
	RedisURL string `yaml:"redisUrl" envconfig:"redis_url"`

	// DepartureSettleMS is how long to wait after a disconnect before
	// evaluating whether the room is empty or needs a re-deal
	DepartureSettleMS int `yaml:"departureSettleMs" envconfig:"departure_settle_ms"`

	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
}

var config Config

// DefaultConfig returns the configuration defaults
func DefaultConfig() Config {
	var c Config
	c.Addr = ":5000"
	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error; the defaults apply
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("CB_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("cb", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
