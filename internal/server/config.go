package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/streaming-roi/internal/config"
	"github.com/iwvelando/streaming-roi/pkg/constants"
	"gopkg.in/yaml.v3"
)

// DefaultShutdownTimeout bounds how long in-flight requests may run after a
// shutdown signal.
const DefaultShutdownTimeout = 5 * time.Second

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address         string               `yaml:"address"`
	MaxBodySize     string               `yaml:"maxBodySize"`
	ShutdownTimeout string               `yaml:"shutdownTimeout"`
	Logging         config.LoggingConfig `yaml:"logging"`
	bodySizeBytes   int64
	shutdownTimeout time.Duration
}

// DefaultConfig returns the server configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Address:         constants.DefaultServerAddress,
		MaxBodySize:     strconv.FormatInt(constants.DefaultMaxUploadSizeBytes, 10),
		ShutdownTimeout: DefaultShutdownTimeout.String(),
		bodySizeBytes:   constants.DefaultMaxUploadSizeBytes,
		shutdownTimeout: DefaultShutdownTimeout,
	}
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BodySizeBytes returns the configured request body limit in bytes.
func (c *Config) BodySizeBytes() int64 {
	return c.bodySizeBytes
}

// ShutdownTimeoutDuration returns the configured graceful shutdown timeout.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	return c.shutdownTimeout
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = constants.DefaultServerAddress
	}

	bytes, err := ParseSize(c.MaxBodySize)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxUploadSizeBytes
	}
	c.bodySizeBytes = bytes
	c.MaxBodySize = strconv.FormatInt(bytes, 10)

	timeout := DefaultShutdownTimeout
	if trimmed := strings.TrimSpace(c.ShutdownTimeout); trimmed != "" {
		timeout, err = time.ParseDuration(trimmed)
		if err != nil {
			return fmt.Errorf("invalid shutdownTimeout %q: %w", c.ShutdownTimeout, err)
		}
		if timeout <= 0 {
			return fmt.Errorf("shutdownTimeout must be positive, got %s", c.ShutdownTimeout)
		}
	}
	c.shutdownTimeout = timeout
	c.ShutdownTimeout = timeout.String()
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 || (n != 0 && result/n != multiplier) {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
