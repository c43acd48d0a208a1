package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/ums-in-go/pkg/seed"
)

const (
	DefaultConfigPath = "/etc/ums/config"
	ConfigFileName    = "ums.yml"

	// EnvPrefix is prepended to every attribute's environment variable
	EnvPrefix = "UMS_"

	sourceDefault     = "default"
	sourceFile        = "file"
	sourceEnvironment = "environment"
)

// ValidDrivers is the list of supported database drivers
var ValidDrivers = []string{"sqlite", "postgres"}

// UMSConfig holds all settings for the user management service
type UMSConfig struct {
	// DatabaseDriver selects the storage engine
	DatabaseDriver string `yaml:"database_driver" json:"database_driver" env:"DATABASE_DRIVER"`

	// DatabaseURL is a file path for sqlite or a connection URL for postgres
	DatabaseURL string `yaml:"database_url" json:"database_url" env:"DATABASE_URL"`

	// SeedLocation is a file path or http(s) URL of the seed document
	SeedLocation string `yaml:"seed_location" json:"seed_location" env:"SEED_LOCATION"`

	BindAddress string `yaml:"bind_address" json:"bind_address" env:"BIND_ADDRESS"`
	Port        int    `yaml:"port" json:"port" env:"PORT"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level" json:"log_level" env:"LOG_LEVEL"`

	// sources tracks where each value came from
	sources map[string]string

	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

var (
	globalConfig *UMSConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *UMSConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

func newDefault() *UMSConfig {
	c := &UMSConfig{
		DatabaseDriver: "sqlite",
		DatabaseURL:    "ums.db",
		SeedLocation:   seed.DefaultLocation,
		BindAddress:    "127.0.0.1",
		Port:           8080,
		LogLevel:       "info",
		sources:        make(map[string]string),
	}
	for _, name := range attributeNames() {
		c.sources[name] = sourceDefault
	}
	return c
}

// Load loads configuration from the config file and UMS_* environment
// variables. Environment variables take precedence over file values.
func Load() (*UMSConfig, error) {
	config := newDefault()

	configPath := os.Getenv(EnvPrefix + "CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		if err := config.applyFile(data); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file %s: %w", config.configFilePath, err)
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

func attributeNames() []string {
	return []string{
		"database_driver", "database_url", "seed_location",
		"bind_address", "port", "log_level",
	}
}

// applyFile overlays the keys present in the YAML document. Keys are
// collected separately so an explicit zero still counts as set.
func (c *UMSConfig) applyFile(data []byte) error {
	var present map[string]any
	if err := yaml.Unmarshal(data, &present); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}
	for key := range present {
		if slices.Contains(attributeNames(), key) {
			c.sources[key] = sourceFile
		}
	}
	return nil
}

func (c *UMSConfig) applyEnv() error {
	err := env.ParseWithOptions(c, env.Options{
		Prefix: EnvPrefix,
		OnSet: func(key string, value any, isDefault bool) {
			if s, _ := value.(string); s == "" || isDefault {
				return
			}
			c.sources[strings.ToLower(strings.TrimPrefix(key, EnvPrefix))] = sourceEnvironment
		},
	})
	if err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// ConfigFilePath returns the path to the config file
func (c *UMSConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *UMSConfig) Source(name string) string {
	if s, ok := c.sources[name]; ok {
		return s
	}
	return sourceDefault
}

// Address returns the host:port the server listens on
func (c *UMSConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.BindAddress, c.Port)
}

// Level parses LogLevel, falling back to info
func (c *UMSConfig) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Validate validates the configuration
func (c *UMSConfig) Validate() error {
	if !slices.Contains(ValidDrivers, c.DatabaseDriver) {
		return fmt.Errorf("invalid database_driver: %q (expected one of %s)", c.DatabaseDriver, strings.Join(ValidDrivers, ", "))
	}
	if c.DatabaseURL == "" {
		return errors.New("database_url is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level: %q", c.LogLevel)
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *UMSConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "database_driver", Value: c.DatabaseDriver, Source: c.Source("database_driver")},
		{Name: "database_url", Value: redactURL(c.DatabaseURL), Source: c.Source("database_url")},
		{Name: "seed_location", Value: c.SeedLocation, Source: c.Source("seed_location")},
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: strconv.Itoa(c.Port), Source: c.Source("port")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
	}
}

// FormatText returns a text representation of the configuration
func (c *UMSConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *UMSConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// redactURL hides the password of a postgres connection URL
func redactURL(raw string) string {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return raw
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return raw
	}
	user, _, hasPassword := strings.Cut(creds, ":")
	if !hasPassword {
		return raw
	}
	return scheme + "://" + user + ":xxxxx@" + host
}
