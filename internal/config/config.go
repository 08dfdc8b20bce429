// Package config provides configuration management for the Delta site using
// Viper for flexible loading from files, environment variables, and
// command-line flags.
//
// Values come from .delta.yml (or DELTA_CONFIG_FILE), DELTA_ prefixed
// environment variables such as DELTA_SERVER_PORT, and flags bound by the
// cmd package. Defaults are applied in Load and every loaded configuration
// is validated before use.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Defaults shared with the cmd package flag definitions.
const (
	DefaultHost             = "localhost"
	DefaultPort             = 8080
	DefaultAutoplayInterval = 5 * time.Second
	DefaultNarrowMaxWidth   = 768
	DefaultNarrowPageSize   = 1
	DefaultWidePageSize     = 3
	DefaultSubmitDelay      = time.Second
	DefaultStatusTimeout    = 3 * time.Second
)

type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Content  ContentConfig  `yaml:"content" mapstructure:"content"`
	Carousel CarouselConfig `yaml:"carousel" mapstructure:"carousel"`
	Contact  ContactConfig  `yaml:"contact" mapstructure:"contact"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	Host           string   `yaml:"host" mapstructure:"host"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	Environment    string   `yaml:"environment" mapstructure:"environment"`
}

// ContentConfig points at the content catalog. An empty Path selects the
// catalog embedded in the binary.
type ContentConfig struct {
	Path          string   `yaml:"path" mapstructure:"path"`
	Watch         bool     `yaml:"watch" mapstructure:"watch"`
	WatchPatterns []string `yaml:"watch_patterns" mapstructure:"watch_patterns"`
}

type CarouselConfig struct {
	AutoplayInterval time.Duration `yaml:"autoplay_interval" mapstructure:"autoplay_interval"`
	NarrowMaxWidth   int           `yaml:"narrow_max_width" mapstructure:"narrow_max_width"`
	NarrowPageSize   int           `yaml:"narrow_page_size" mapstructure:"narrow_page_size"`
	WidePageSize     int           `yaml:"wide_page_size" mapstructure:"wide_page_size"`
}

type ContactConfig struct {
	SubmitDelay   time.Duration `yaml:"submit_delay" mapstructure:"submit_delay"`
	StatusTimeout time.Duration `yaml:"status_timeout" mapstructure:"status_timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg, false)
	return cfg
}

func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Viper does not always decode slices set through Set or env vars.
	if viper.IsSet("server.allowed_origins") && len(config.Server.AllowedOrigins) == 0 {
		config.Server.AllowedOrigins = viper.GetStringSlice("server.allowed_origins")
	}
	if viper.IsSet("content.watch_patterns") && len(config.Content.WatchPatterns) == 0 {
		config.Content.WatchPatterns = viper.GetStringSlice("content.watch_patterns")
	}
	if viper.IsSet("content.watch") {
		config.Content.Watch = viper.GetBool("content.watch")
	}

	// The log-level flag is bound at the root command.
	if config.Logging.Level == "" && viper.IsSet("log-level") {
		config.Logging.Level = viper.GetString("log-level")
	}

	applyDefaults(&config, viper.IsSet("server.port"))

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults fills zero values. portSet keeps an explicit port 0, which
// asks the OS for a free port.
func applyDefaults(config *Config, portSet bool) {
	if config.Server.Host == "" {
		config.Server.Host = DefaultHost
	}
	if config.Server.Port == 0 && !portSet {
		config.Server.Port = DefaultPort
	}
	if config.Server.Environment == "" {
		config.Server.Environment = "development"
	}
	if len(config.Server.AllowedOrigins) == 0 {
		config.Server.AllowedOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}

	if len(config.Content.WatchPatterns) == 0 {
		config.Content.WatchPatterns = []string{"**/*.yml", "**/*.yaml", "**/*.md"}
	}

	if config.Carousel.AutoplayInterval == 0 {
		config.Carousel.AutoplayInterval = DefaultAutoplayInterval
	}
	if config.Carousel.NarrowMaxWidth == 0 {
		config.Carousel.NarrowMaxWidth = DefaultNarrowMaxWidth
	}
	if config.Carousel.NarrowPageSize == 0 {
		config.Carousel.NarrowPageSize = DefaultNarrowPageSize
	}
	if config.Carousel.WidePageSize == 0 {
		config.Carousel.WidePageSize = DefaultWidePageSize
	}

	if config.Contact.SubmitDelay == 0 {
		config.Contact.SubmitDelay = DefaultSubmitDelay
	}
	if config.Contact.StatusTimeout == 0 {
		config.Contact.StatusTimeout = DefaultStatusTimeout
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.Format == "" {
		config.Logging.Format = "text"
	}
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := validateContentConfig(&config.Content); err != nil {
		return fmt.Errorf("content config: %w", err)
	}
	if err := validateCarouselConfig(&config.Carousel); err != nil {
		return fmt.Errorf("carousel config: %w", err)
	}
	if err := validateContactConfig(&config.Contact); err != nil {
		return fmt.Errorf("contact config: %w", err)
	}
	if err := validateLoggingConfig(&config.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	return nil
}

// validateServerConfig validates server configuration values
func validateServerConfig(config *ServerConfig) error {
	// 0 is allowed for system-assigned ports in testing
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port %d is not in valid range 0-65535", config.Port)
	}

	if config.Host != "" {
		dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\"}
		for _, char := range dangerousChars {
			if strings.Contains(config.Host, char) {
				return fmt.Errorf("host contains dangerous character: %s", char)
			}
		}
	}

	for _, origin := range config.AllowedOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("allowed_origins contains an empty entry")
		}
	}

	return nil
}

func validateContentConfig(config *ContentConfig) error {
	if config.Path != "" {
		if err := validatePath(config.Path); err != nil {
			return fmt.Errorf("invalid content path '%s': %w", config.Path, err)
		}
	}
	if config.Watch && config.Path == "" {
		return fmt.Errorf("watch requires a content path")
	}
	return nil
}

func validateCarouselConfig(config *CarouselConfig) error {
	if config.AutoplayInterval < 100*time.Millisecond {
		return fmt.Errorf("autoplay_interval %s is too short", config.AutoplayInterval)
	}
	if config.NarrowMaxWidth < 0 {
		return fmt.Errorf("narrow_max_width must not be negative")
	}
	if config.NarrowPageSize < 1 || config.WidePageSize < 1 {
		return fmt.Errorf("page sizes must be at least 1")
	}
	return nil
}

func validateContactConfig(config *ContactConfig) error {
	if config.SubmitDelay < 0 {
		return fmt.Errorf("submit_delay must not be negative")
	}
	if config.StatusTimeout <= 0 {
		return fmt.Errorf("status_timeout must be positive")
	}
	return nil
}

func validateLoggingConfig(config *LoggingConfig) error {
	switch strings.ToLower(config.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", config.Level)
	}
	switch config.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", config.Format)
	}
	return nil
}

// validatePath validates a file path for security
func validatePath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path contains traversal: %s", path)
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}
