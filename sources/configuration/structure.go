package configuration

import (
	"time"
)

type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Redis    RedisConfig    `yaml:"redis"`
	Telegram TelegramConfig `yaml:"telegram"`
	Commands CommandsConfig `yaml:"commands"`
}

type ServiceConfig struct {
	ApplicationMetricsPort int `yaml:"application_metrics_port"`
}

type RedisConfig struct {
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

type TelegramConfig struct {
	BotToken          string   `yaml:"bot_token"`
	APIEndpoint       string   `yaml:"api_endpoint"`
	PollerTimeout     int      `yaml:"poller_timeout"`
	AllowedUpdates    []string `yaml:"allowed_updates"`
	DiplomatChunkSize int      `yaml:"diplomat_chunk_size"`
	Admins            []int64  `yaml:"admins"`
}

type CommandsConfig struct {
	Prefix         string `yaml:"prefix"`
	Fallback       string `yaml:"fallback"`
	MaxInputLength int    `yaml:"max_input_length"`
}

func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.Telegram.Admins {
		if id == userID {
			return true
		}
	}
	return false
}

func (c *Config) applyDefaults() {
	if c.Service.ApplicationMetricsPort == 0 {
		c.Service.ApplicationMetricsPort = 9090
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Redis.DialTimeout == 0 {
		c.Redis.DialTimeout = 5 * time.Second
	}
	if c.Telegram.PollerTimeout == 0 {
		c.Telegram.PollerTimeout = 60
	}
	if len(c.Telegram.AllowedUpdates) == 0 {
		c.Telegram.AllowedUpdates = []string{"message"}
	}
	if c.Telegram.DiplomatChunkSize == 0 {
		c.Telegram.DiplomatChunkSize = 4096
	}
	if c.Commands.Prefix == "" {
		c.Commands.Prefix = "pg!"
	}
	if c.Commands.Fallback == "" {
		c.Commands.Fallback = "help"
	}
	if c.Commands.MaxInputLength == 0 {
		c.Commands.MaxInputLength = 2000
	}
}
