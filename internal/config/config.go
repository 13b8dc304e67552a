// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config holds the entire application configuration. Values are resolved by
// viper with the usual precedence: flags, then environment (PASSGAUGE_*),
// then config file, then the defaults below.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	Generator GeneratorConfig `mapstructure:"generator" yaml:"generator"`
	Analysis  AnalysisConfig  `mapstructure:"analysis" yaml:"analysis"`
	Wordlists WordlistsConfig `mapstructure:"wordlists" yaml:"wordlists"`
	Audit     AuditConfig     `mapstructure:"audit" yaml:"audit"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the console color per log level.
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
	Fatal string `mapstructure:"fatal" yaml:"fatal"`
}

// GeneratorConfig carries the default shape of generated passwords. Flags on
// the generate command override these per invocation.
type GeneratorConfig struct {
	Length           int    `mapstructure:"length" yaml:"length"`
	Count            int    `mapstructure:"count" yaml:"count"`
	UseLower         bool   `mapstructure:"use_lower" yaml:"use_lower"`
	UseUpper         bool   `mapstructure:"use_upper" yaml:"use_upper"`
	UseDigits        bool   `mapstructure:"use_digits" yaml:"use_digits"`
	UseSymbols       bool   `mapstructure:"use_symbols" yaml:"use_symbols"`
	ExcludeAmbiguous bool   `mapstructure:"exclude_ambiguous" yaml:"exclude_ambiguous"`
	ExcludedChars    string `mapstructure:"excluded_chars" yaml:"excluded_chars"`
}

// AnalysisConfig tunes how analyses execute. Detector thresholds and penalty
// weights are fixed constants in internal/analysis, deliberately not
// configurable, so scores stay reproducible across installations.
type AnalysisConfig struct {
	// Parallel runs the detectors concurrently. Findings are re-sequenced
	// into the documented detector order either way.
	Parallel bool `mapstructure:"parallel" yaml:"parallel"`

	// ZxcvbnCrossCheck adds an advisory zxcvbn score next to the engine's
	// own estimate. Display only.
	ZxcvbnCrossCheck bool `mapstructure:"zxcvbn_cross_check" yaml:"zxcvbn_cross_check"`
}

// WordlistsConfig controls where word sets live and how remote ones are
// fetched.
type WordlistsConfig struct {
	// DataDir is where fetched lists are cached. "~" expands to the home
	// directory.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// Sets names the lists loaded for analyze/audit/serve: registry names
	// (seclists_200, english_words, ...), local paths, or s3:// URLs.
	Sets []string `mapstructure:"sets" yaml:"sets"`

	// MaxFetchBytes caps a single remote download.
	MaxFetchBytes int64 `mapstructure:"max_fetch_bytes" yaml:"max_fetch_bytes"`

	FetchTimeout time.Duration `mapstructure:"fetch_timeout" yaml:"fetch_timeout"`

	// RatePerSecond paces batch fetches against remote mirrors.
	RatePerSecond float64 `mapstructure:"rate_per_second" yaml:"rate_per_second"`
}

// AuditConfig controls the bulk audit runner.
type AuditConfig struct {
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`

	// WeakestCount is how many of the lowest scoring lines the summary keeps.
	WeakestCount int `mapstructure:"weakest_count" yaml:"weakest_count"`

	// FailBelow makes the audit command exit non-zero when any candidate
	// lands below this strength band. Empty disables the gate.
	FailBelow string `mapstructure:"fail_below" yaml:"fail_below"`
}

// ServerConfig tunes the HTTP facade.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// DatabaseConfig holds the audit store connection details. Empty URL means
// persistence is off.
type DatabaseConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
}

// SetDefaults initializes default values for every configuration parameter.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "passgauge")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Generator --
	v.SetDefault("generator.length", 16)
	v.SetDefault("generator.count", 1)
	v.SetDefault("generator.use_lower", true)
	v.SetDefault("generator.use_upper", true)
	v.SetDefault("generator.use_digits", true)
	v.SetDefault("generator.use_symbols", true)
	v.SetDefault("generator.exclude_ambiguous", false)
	v.SetDefault("generator.excluded_chars", "")

	// -- Analysis --
	v.SetDefault("analysis.parallel", true)
	v.SetDefault("analysis.zxcvbn_cross_check", true)

	// -- Wordlists --
	v.SetDefault("wordlists.data_dir", "~/.passgauge/wordlists")
	v.SetDefault("wordlists.sets", []string{})
	v.SetDefault("wordlists.max_fetch_bytes", int64(200*1024*1024))
	v.SetDefault("wordlists.fetch_timeout", "5m")
	v.SetDefault("wordlists.rate_per_second", 2.0)

	// -- Audit --
	v.SetDefault("audit.concurrency", 8)
	v.SetDefault("audit.weakest_count", 10)
	v.SetDefault("audit.fail_below", "")

	// -- Server --
	v.SetDefault("server.addr", ":8972")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "15s")
}

// NewConfigFromViper creates a configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	// The database URL is the one secret-bearing value; make sure the bare
	// env var wins even without a config file present.
	_ = v.BindEnv("database.url", "PASSGAUGE_DATABASE_URL")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be 'console' or 'json', got %q", c.Logger.Format)
	}
	if c.Generator.Length <= 0 {
		return fmt.Errorf("generator.length must be a positive integer")
	}
	if c.Generator.Count <= 0 {
		return fmt.Errorf("generator.count must be a positive integer")
	}
	if c.Audit.Concurrency <= 0 {
		return fmt.Errorf("audit.concurrency must be a positive integer")
	}
	if c.Audit.WeakestCount < 0 {
		return fmt.Errorf("audit.weakest_count must not be negative")
	}
	if c.Audit.FailBelow != "" {
		switch c.Audit.FailBelow {
		case "very-weak", "weak", "fair", "strong", "very-strong":
		default:
			return fmt.Errorf("audit.fail_below must name a strength band, got %q", c.Audit.FailBelow)
		}
	}
	if c.Wordlists.MaxFetchBytes <= 0 {
		return fmt.Errorf("wordlists.max_fetch_bytes must be a positive integer")
	}
	if c.Wordlists.RatePerSecond <= 0 {
		return fmt.Errorf("wordlists.rate_per_second must be positive")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	return nil
}

// ResolvedDataDir expands the configured wordlist directory to an absolute
// path.
func (c *Config) ResolvedDataDir() (string, error) {
	dir, err := homedir.Expand(c.Wordlists.DataDir)
	if err != nil {
		return "", fmt.Errorf("failed to expand wordlists.data_dir: %w", err)
	}
	return dir, nil
}
