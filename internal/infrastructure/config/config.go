package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Source backends supported by the advertisement intake.
const (
	BackendMQTT = "mqtt"
	BackendNATS = "nats"
	BackendZMQ  = "zmq"
)

// Config is the root configuration structure for the Govee watcher.
// All configuration is loaded from YAML and can be overridden by
// environment variables.
type Config struct {
	Devices []DeviceConfig `yaml:"devices"`
	Status  StatusConfig   `yaml:"status"`
	Source  SourceConfig   `yaml:"source"`
	Metrics MetricsConfig  `yaml:"metrics"`
	Logging LoggingConfig  `yaml:"logging"`
}

// DeviceConfig registers one sensor to watch.
type DeviceConfig struct {
	// Address is the 48-bit hardware address, colon-hex or bare-hex.
	Address string `yaml:"address"`

	// Model is the Govee model tag: "H5179" or "H5072".
	Model string `yaml:"model"`
}

// StatusConfig contains the TCP status protocol server settings.
type StatusConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// SingleDevice omits the address field from status lines. Only valid
	// when exactly one device is registered.
	SingleDevice bool `yaml:"single_device"`
}

// SourceConfig selects and configures the advertisement source backend.
type SourceConfig struct {
	// Backend is one of "mqtt", "nats" or "zmq".
	Backend string `yaml:"backend"`

	MQTT MQTTConfig      `yaml:"mqtt"`
	NATS NATSConfig      `yaml:"nats"`
	ZMQ  ZMQSourceConfig `yaml:"zmq"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	Topic     string              `yaml:"topic"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings in seconds.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// NATSConfig contains NATS connection settings.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// ZMQSourceConfig contains ZeroMQ SUB socket settings.
type ZMQSourceConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// MetricsConfig contains the optional Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable
// overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: GOVEEWATCH_SECTION_KEY
// For example: GOVEEWATCH_STATUS_PORT, GOVEEWATCH_MQTT_PASSWORD
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Status: StatusConfig{
			Host: "127.0.0.1",
			Port: 1111,
		},
		Source: SourceConfig{
			Backend: BackendMQTT,
			MQTT: MQTTConfig{
				Broker: MQTTBrokerConfig{
					Host:     "localhost",
					Port:     1883,
					ClientID: "goveewatch",
				},
				Topic: "goveewatch/adv/#",
				QoS:   1,
				Reconnect: MQTTReconnectConfig{
					InitialDelay: 1,
					MaxDelay:     60,
				},
			},
			NATS: NATSConfig{
				URL:     "nats://localhost:4222",
				Subject: "goveewatch.adv",
			},
			ZMQ: ZMQSourceConfig{
				Endpoint: "tcp://localhost:5556",
			},
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Host:    "127.0.0.1",
			Port:    9090,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Variables follow the pattern: GOVEEWATCH_SECTION_KEY.
func applyEnvOverrides(cfg *Config) {
	// Status server
	if v := os.Getenv("GOVEEWATCH_STATUS_HOST"); v != "" {
		cfg.Status.Host = v
	}
	if v := os.Getenv("GOVEEWATCH_STATUS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Status.Port = port
		}
	}

	// Source
	if v := os.Getenv("GOVEEWATCH_SOURCE_BACKEND"); v != "" {
		cfg.Source.Backend = v
	}
	if v := os.Getenv("GOVEEWATCH_MQTT_HOST"); v != "" {
		cfg.Source.MQTT.Broker.Host = v
	}
	if v := os.Getenv("GOVEEWATCH_MQTT_USERNAME"); v != "" {
		cfg.Source.MQTT.Auth.Username = v
	}
	if v := os.Getenv("GOVEEWATCH_MQTT_PASSWORD"); v != "" {
		cfg.Source.MQTT.Auth.Password = v
	}
	if v := os.Getenv("GOVEEWATCH_NATS_URL"); v != "" {
		cfg.Source.NATS.URL = v
	}
	if v := os.Getenv("GOVEEWATCH_ZMQ_ENDPOINT"); v != "" {
		cfg.Source.ZMQ.Endpoint = v
	}

	// Logging
	if v := os.Getenv("GOVEEWATCH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Device validation. Address and model syntax are validated in depth
	// when the registry is built; here we only require presence.
	if len(c.Devices) == 0 {
		errs = append(errs, "devices: at least one device is required")
	}
	for i, d := range c.Devices {
		if d.Address == "" {
			errs = append(errs, fmt.Sprintf("devices[%d].address is required", i))
		}
		if d.Model == "" {
			errs = append(errs, fmt.Sprintf("devices[%d].model is required", i))
		}
	}

	// Status server validation
	if c.Status.Port < 1 || c.Status.Port > 65535 {
		errs = append(errs, "status.port must be between 1 and 65535")
	}
	if c.Status.SingleDevice && len(c.Devices) != 1 {
		errs = append(errs, "status.single_device requires exactly one device")
	}

	// Source validation
	switch c.Source.Backend {
	case BackendMQTT, BackendNATS, BackendZMQ:
	default:
		errs = append(errs, fmt.Sprintf("source.backend must be %q, %q or %q",
			BackendMQTT, BackendNATS, BackendZMQ))
	}
	if c.Source.MQTT.QoS < 0 || c.Source.MQTT.QoS > 2 {
		errs = append(errs, "source.mqtt.qos must be 0, 1, or 2")
	}

	// Metrics validation
	if c.Metrics.Enabled && (c.Metrics.Port < 1 || c.Metrics.Port > 65535) {
		errs = append(errs, "metrics.port must be between 1 and 65535")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// DeviceMap returns the devices as an address → model map for registry
// construction.
func (c *Config) DeviceMap() map[string]string {
	m := make(map[string]string, len(c.Devices))
	for _, d := range c.Devices {
		m[d.Address] = d.Model
	}
	return m
}

// StatusAddr returns the status server listen address as host:port.
func (c *Config) StatusAddr() string {
	return fmt.Sprintf("%s:%d", c.Status.Host, c.Status.Port)
}

// MetricsAddr returns the metrics endpoint listen address as host:port.
func (c *Config) MetricsAddr() string {
	return fmt.Sprintf("%s:%d", c.Metrics.Host, c.Metrics.Port)
}

// GetReconnectInitialDelay returns the MQTT initial reconnect delay.
func (c *MQTTConfig) GetReconnectInitialDelay() time.Duration {
	return time.Duration(c.Reconnect.InitialDelay) * time.Second
}

// GetReconnectMaxDelay returns the MQTT maximum reconnect delay.
func (c *MQTTConfig) GetReconnectMaxDelay() time.Duration {
	return time.Duration(c.Reconnect.MaxDelay) * time.Second
}
