package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Year     int            `yaml:"year" mapstructure:"year"`
	Report   ReportConfig   `yaml:"report" mapstructure:"report"`
	HTTP     HTTPConfig     `yaml:"http" mapstructure:"http"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Expected ExpectedConfig `yaml:"expected" mapstructure:"expected"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ReportConfig controls the terminal report.
type ReportConfig struct {
	Width int    `yaml:"width" mapstructure:"width"`
	Color string `yaml:"color" mapstructure:"color"`
}

// HTTPConfig configures requests to the puzzle site.
type HTTPConfig struct {
	BaseURL   string        `yaml:"base_url" mapstructure:"base_url"`
	UserAgent string        `yaml:"user_agent" mapstructure:"user_agent"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RateLimit float64       `yaml:"rate_limit" mapstructure:"rate_limit"`
	Burst     int           `yaml:"burst" mapstructure:"burst"`
}

// CacheConfig locates the flat-file caches.
type CacheConfig struct {
	InputDir  string `yaml:"input_dir" mapstructure:"input_dir"`
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
	TokenPath string `yaml:"token_path" mapstructure:"token_path"`
}

// ExpectedConfig toggles comparison against previously accepted answers.
type ExpectedConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("aoc")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "aoc"))
	}

	// Environment
	v.SetEnvPrefix("AOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("year", 0)
	v.SetDefault("report.width", 40)
	v.SetDefault("report.color", "auto")
	v.SetDefault("http.base_url", "https://adventofcode.com")
	v.SetDefault("http.user_agent", "github.com/sells-group/aoc-runner")
	v.SetDefault("http.timeout", "0s")
	v.SetDefault("http.rate_limit", 1.0)
	v.SetDefault("http.burst", 1)
	v.SetDefault("cache.input_dir", "input")
	v.SetDefault("cache.output_dir", "output")
	v.SetDefault("cache.token_path", "")
	v.SetDefault("expected.enabled", true)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks value ranges that viper cannot express.
func (c *Config) Validate() error {
	var problems []string
	if c.Year < 0 {
		problems = append(problems, "year must be >= 0")
	}
	if c.Report.Width <= 0 {
		problems = append(problems, "report.width must be > 0")
	}
	switch c.Report.Color {
	case "", "auto", "always", "never":
	default:
		problems = append(problems, fmt.Sprintf("report.color %q must be auto, always or never", c.Report.Color))
	}
	if c.HTTP.RateLimit < 0 {
		problems = append(problems, "http.rate_limit must be >= 0")
	}
	if c.HTTP.Burst < 1 {
		problems = append(problems, "http.burst must be >= 1")
	}
	if c.HTTP.Timeout < 0 {
		problems = append(problems, "http.timeout must be >= 0")
	}
	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger. Log output goes to stderr so
// it never interleaves with the report on stdout.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.OutputPaths = []string{"stderr"}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
