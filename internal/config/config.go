package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Redis    Redis  `yaml:"redis"`
	Events   Events `yaml:"events"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Events configures where round events are published besides the in-process hub.
type Events struct {
	RedisEnabled bool   `yaml:"redis-enabled" env:"EVENTS_REDIS_ENABLED" env-default:"false"`
	RedisChannel string `yaml:"redis-channel" env:"EVENTS_REDIS_CHANNEL" env-default:"tictactoe:events"`
	BufferSize   int    `yaml:"buffer-size" env:"EVENTS_BUFFER_SIZE" env-default:"16"`
}

// Load - reads the config file when it exists, otherwise only the environment.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
