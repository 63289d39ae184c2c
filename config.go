package dropzone

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gobeaver/beaver-kit/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/gobeaver/dropzone/filevalidator"
)

type Config struct {
	// Accept pattern ("*", "image/*", or a substring of the MIME type)
	Accept string `env:"DROPZONE_ACCEPT,default:*" yaml:"accept"`

	// Maximum file size in bytes, 0 means unlimited
	MaxFileSize int64 `env:"DROPZONE_MAX_FILE_SIZE,default:0" yaml:"max_file_size"`

	// Intake behavior
	AllowMultiple       bool   `env:"DROPZONE_ALLOW_MULTIPLE,default:true" yaml:"allow_multiple"`
	RetainAcrossBatches bool   `env:"DROPZONE_RETAIN_ACROSS_BATCHES,default:true" yaml:"retain_across_batches"`
	Disabled            bool   `env:"DROPZONE_DISABLED,default:false" yaml:"disabled"`
	InitialFiles        string `env:"DROPZONE_INITIAL_FILES" yaml:"initial_files"` // comma-separated paths

	// Validation fan-out, 0 means one goroutine per file
	Concurrency int `env:"DROPZONE_CONCURRENCY,default:0" yaml:"concurrency"`

	// Preview generation
	GeneratePreviews bool   `env:"DROPZONE_GENERATE_PREVIEWS,default:false" yaml:"generate_previews"`
	PreviewTimeout   string `env:"DROPZONE_PREVIEW_TIMEOUT" yaml:"preview_timeout"` // e.g. "5s"
	PreviewMaxBytes  int64  `env:"DROPZONE_PREVIEW_MAX_BYTES,default:0" yaml:"preview_max_bytes"`
	PreviewCacheTTL  string `env:"DROPZONE_PREVIEW_CACHE_TTL" yaml:"preview_cache_ttl"` // empty disables the cache

	LogLevel string `env:"DROPZONE_LOG_LEVEL,default:info" yaml:"log_level"`
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() Config {
	return Config{
		Accept:              filevalidator.AcceptAll,
		AllowMultiple:       true,
		RetainAcrossBatches: true,
		LogLevel:            "info",
	}
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML config file. Keys missing from the file keep
// their DefaultConfig values.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the config for values New cannot work with
func (c Config) Validate() error {
	var errs []error
	if c.MaxFileSize < 0 {
		errs = append(errs, fmt.Errorf("max file size must not be negative: %d", c.MaxFileSize))
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must not be negative: %d", c.Concurrency))
	}
	if c.PreviewMaxBytes < 0 {
		errs = append(errs, fmt.Errorf("preview max bytes must not be negative: %d", c.PreviewMaxBytes))
	}
	if _, err := parseDuration(c.PreviewTimeout); err != nil {
		errs = append(errs, fmt.Errorf("invalid preview timeout: %w", err))
	}
	if _, err := parseDuration(c.PreviewCacheTTL); err != nil {
		errs = append(errs, fmt.Errorf("invalid preview cache ttl: %w", err))
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Constraints converts the config into validation constraints
func (c Config) Constraints() filevalidator.Constraints {
	return filevalidator.Constraints{
		Accept:           c.Accept,
		MaxFileSize:      c.MaxFileSize,
		GeneratePreviews: c.GeneratePreviews,
		Concurrency:      c.Concurrency,
	}
}

// InitialPaths returns the configured seed files
func (c Config) InitialPaths() []string {
	var paths []string
	for _, p := range strings.Split(c.InitialFiles, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must not be negative: %s", s)
	}
	return d, nil
}
