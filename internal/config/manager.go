package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"naver-go/pkg/naver"
	"naver-go/pkg/ncloud"
	"naver-go/pkg/transport"
)

// EnvPrefix namespaces environment overrides, e.g. NAVER_CONSUMER_CLIENT_ID.
const EnvPrefix = "NAVER"

type manager struct {
	mu         sync.RWMutex
	config     *Config
	viper      *viper.Viper
	configPath string
}

func NewManager() Manager {
	return &manager{
		viper: viper.New(),
	}
}

// Load reads configPath when given and applies environment overrides on top
// of the defaults. An empty path configures from the environment alone.
func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.configPath = configPath
	m.setupViper()

	config, err := m.read()
	if err != nil {
		return nil, err
	}
	m.config = config
	return config, nil
}

func (m *manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return errors.New("config not loaded")
	}

	config, err := m.read()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *manager) read() (*Config, error) {
	if m.configPath != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

func (m *manager) setupViper() {
	if m.configPath != "" {
		m.viper.SetConfigFile(m.configPath)
	}

	m.viper.SetEnvPrefix(EnvPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	setDefaults(m.viper)
}

// setDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal, including keys absent from the file.
func setDefaults(v *viper.Viper) {
	td := transport.DefaultConfig()

	v.SetDefault("consumer.client_id", "")
	v.SetDefault("consumer.client_secret", "")
	v.SetDefault("consumer.base_url", naver.DefaultBaseURL)
	v.SetDefault("consumer.map_base_url", naver.DefaultMapBaseURL)

	v.SetDefault("cloud.key_id", "")
	v.SetDefault("cloud.key", "")
	v.SetDefault("cloud.base_url", ncloud.DefaultBaseURL)

	v.SetDefault("transport.request_timeout", td.RequestTimeout)
	v.SetDefault("transport.dial_timeout", td.DialTimeout)
	v.SetDefault("transport.max_conns_per_host", td.MaxConnsPerHost)
	v.SetDefault("transport.user_agent", td.UserAgent)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.time_format", "")
}

func validateConfig(config *Config) error {
	if !config.Consumer.Configured() && !config.Cloud.Configured() {
		return errors.New("no credentials: set consumer.client_id/client_secret or cloud.key_id/key")
	}

	if config.Transport.RequestTimeout <= 0 {
		return fmt.Errorf("transport.request_timeout must be positive, got %s", config.Transport.RequestTimeout)
	}

	if config.Transport.MaxConnsPerHost < 0 {
		return fmt.Errorf("transport.max_conns_per_host cannot be negative")
	}

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	return nil
}
