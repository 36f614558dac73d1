package config

import (
	"time"

	"naver-go/pkg/logger"
	"naver-go/pkg/transport"
)

type Config struct {
	Consumer  ConsumerConfig  `mapstructure:"consumer"`
	Cloud     CloudConfig     `mapstructure:"cloud"`
	Transport TransportConfig `mapstructure:"transport"`
	Server    ServerConfig    `mapstructure:"server"`
	Logger    LoggerConfig    `mapstructure:"logger"`
}

// ConsumerConfig holds the Naver Developers Open API application keys.
type ConsumerConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	BaseURL      string `mapstructure:"base_url"`
	MapBaseURL   string `mapstructure:"map_base_url"`
}

func (c ConsumerConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// CloudConfig holds the NAVER Cloud Platform API Gateway keys.
type CloudConfig struct {
	KeyID   string `mapstructure:"key_id"`
	Key     string `mapstructure:"key"`
	BaseURL string `mapstructure:"base_url"`
}

func (c CloudConfig) Configured() bool {
	return c.KeyID != "" && c.Key != ""
}

type TransportConfig struct {
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	DialTimeout     time.Duration `mapstructure:"dial_timeout"`
	MaxConnsPerHost int           `mapstructure:"max_conns_per_host"`
	UserAgent       string        `mapstructure:"user_agent"`
}

func (c TransportConfig) ToTransport() transport.Config {
	return transport.Config{
		RequestTimeout:  c.RequestTimeout,
		DialTimeout:     c.DialTimeout,
		MaxConnsPerHost: c.MaxConnsPerHost,
		UserAgent:       c.UserAgent,
	}
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"time_format"`
}

func (c LoggerConfig) ToLogger() logger.Config {
	return logger.Config{
		Level:      c.Level,
		Format:     c.Format,
		Output:     c.Output,
		TimeFormat: c.TimeFormat,
	}
}

type Manager interface {
	Load(configPath string) (*Config, error)
	Reload() error
	GetConfig() *Config
}
