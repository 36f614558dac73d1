package transport

import (
	"net"
	"time"

	"github.com/valyala/fasthttp"
)

// Config holds the timeouts and limits of the underlying fasthttp client.
type Config struct {
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	DialTimeout     time.Duration `mapstructure:"dial_timeout"`
	MaxConnsPerHost int           `mapstructure:"max_conns_per_host"`
	UserAgent       string        `mapstructure:"user_agent"`
}

// DefaultConfig returns the settings used when none are supplied
func DefaultConfig() Config {
	return Config{
		RequestTimeout:  10 * time.Second,
		DialTimeout:     5 * time.Second,
		MaxConnsPerHost: 32,
		UserAgent:       "naver-go/1.0",
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = def.RequestTimeout
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = def.DialTimeout
	}
	if c.MaxConnsPerHost <= 0 {
		c.MaxConnsPerHost = def.MaxConnsPerHost
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	return c
}

func newFastHTTPClient(config Config, dial fasthttp.DialFunc) *fasthttp.Client {
	if dial == nil {
		dialer := &fasthttp.TCPDialer{Concurrency: config.MaxConnsPerHost}
		timeout := config.DialTimeout
		dial = func(addr string) (net.Conn, error) {
			return dialer.DialTimeout(addr, timeout)
		}
	}

	return &fasthttp.Client{
		Name:                          config.UserAgent,
		Dial:                          dial,
		MaxConnsPerHost:               config.MaxConnsPerHost,
		ReadTimeout:                   config.RequestTimeout,
		WriteTimeout:                  config.RequestTimeout,
		DisableHeaderNamesNormalizing: true,
	}
}
