package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"warn"`
	Redis    Redis  `yaml:"redis"`
}

// Redis configures the optional game event feed.
type Redis struct {
	Enabled bool   `yaml:"enabled" env:"TICTACTOE_REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"TICTACTOE_REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"TICTACTOE_REDIS_PORT" env-default:"6379"`
	Channel string `yaml:"channel" env:"TICTACTOE_REDIS_CHANNEL" env-default:"tictactoe:events"`
}

// Load - reads the config file at path. A missing file is not an error:
// values then come from the environment and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
