// Package config loads application configuration and sets up logging.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Scrape     ScrapeConfig     `yaml:"scrape" mapstructure:"scrape"`
	Politeness PolitenessConfig `yaml:"politeness" mapstructure:"politeness"`
	Fetch      FetchConfig      `yaml:"fetch" mapstructure:"fetch"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Export     ExportConfig     `yaml:"export" mapstructure:"export"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// ScrapeConfig configures targeting and per-university yield policy.
type ScrapeConfig struct {
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	TargetCountry  string `yaml:"target_country" mapstructure:"target_country"`
	MinCourses     int    `yaml:"min_courses" mapstructure:"min_courses"`
	MaxCourseLinks int    `yaml:"max_course_links" mapstructure:"max_course_links"`
	FetchRetries   int    `yaml:"fetch_retries" mapstructure:"fetch_retries"`
	TargetsFile    string `yaml:"targets_file" mapstructure:"targets_file"`
}

// PolitenessConfig configures inter-request think-time and the
// User-Agent rotation pool.
type PolitenessConfig struct {
	DelayMinMs     int      `yaml:"delay_min_ms" mapstructure:"delay_min_ms"`
	DelayMaxMs     int      `yaml:"delay_max_ms" mapstructure:"delay_max_ms"`
	RequestsPerSec float64  `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	UserAgents     []string `yaml:"user_agents" mapstructure:"user_agents"`
}

// FetchConfig configures the page fetcher.
type FetchConfig struct {
	TimeoutSecs  int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MinBodyBytes int `yaml:"min_body_bytes" mapstructure:"min_body_bytes"`
}

// CacheConfig configures the sqlite page cache.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Path     string `yaml:"path" mapstructure:"path"`
	TTLHours int    `yaml:"ttl_hours" mapstructure:"ttl_hours"`
}

// ExportConfig configures the workbook output.
type ExportConfig struct {
	Output string `yaml:"output" mapstructure:"output"`
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
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("WEBSCRAPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("scrape.base_url", "https://www.topuniversities.com")
	v.SetDefault("scrape.target_country", "India")
	v.SetDefault("scrape.min_courses", 5)
	v.SetDefault("scrape.max_course_links", 12)
	v.SetDefault("scrape.fetch_retries", 3)
	v.SetDefault("politeness.delay_min_ms", 800)
	v.SetDefault("politeness.delay_max_ms", 1800)
	v.SetDefault("politeness.requests_per_sec", 1)
	v.SetDefault("fetch.timeout_secs", 15)
	v.SetDefault("fetch.min_body_bytes", 100)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.path", "pagecache.db")
	v.SetDefault("cache.ttl_hours", 24)
	v.SetDefault("export.output", "university_courses.xlsx")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

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
