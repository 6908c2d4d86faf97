package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string  `yaml:"log-level"   env:"LOG_LEVEL"   env-default:"info"`
	HTTPPort   string  `yaml:"http-port"   env:"HTTP_PORT"   env-default:"9090"`
	SocketPort string  `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis      Redis   `yaml:"redis"`
	Bot        Bot     `yaml:"bot"`
	Chat       Chat    `yaml:"chat"`
	Room       Room    `yaml:"room"`
	Results    Results `yaml:"results"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host"    env:"REDIS_HOST"    env-default:"localhost"`
	Port    string `yaml:"port"    env:"REDIS_PORT"    env-default:"6379"`
}

// Bot - run lengths that make the bot attack or block.
type Bot struct {
	SeekRun  int `yaml:"seek-run"  env-default:"3"`
	BlockRun int `yaml:"block-run" env-default:"5"`
}

type Chat struct {
	Capacity         int `yaml:"capacity"           env-default:"500"`
	History          int `yaml:"history"            env-default:"200"`
	MaxMessageLength int `yaml:"max-message-length" env-default:"500"`
}

type Room struct {
	MaxNameLength int `yaml:"max-name-length" env-default:"32"`
}

type Results struct {
	QueueSize int `yaml:"queue-size" env-default:"64"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Default - configuration built from defaults and the environment only.
func Default() *Config {
	config := &Config{}

	if err := cleanenv.ReadEnv(config); err != nil {
		panic(fmt.Errorf("unable to read config from env: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
