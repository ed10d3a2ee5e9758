package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Output modes for the report layer.
const (
	OutputCSV     = "csv"
	OutputConsole = "console"
)

// Config represents the complete application configuration
type Config struct {
	PredictIt PredictItConfig `mapstructure:"predictit"`
	Advisor   AdvisorConfig   `mapstructure:"advisor"`
	Report    ReportConfig    `mapstructure:"report"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// PredictItConfig holds PredictIt API configuration
type PredictItConfig struct {
	APIBaseURL     string        `mapstructure:"api_base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
	RateLimit      float64       `mapstructure:"rate_limit"` // requests per second
	RateBurst      int           `mapstructure:"rate_burst"`
}

// AdvisorConfig holds the economic parameters of the evaluation
type AdvisorConfig struct {
	Budget          float64 `mapstructure:"budget"`           // capital per opportunity, in dollars
	FeeRate         float64 `mapstructure:"fee_rate"`         // exchange fee on profit
	BiasCoefficient float64 `mapstructure:"bias_coefficient"` // favorite-longshot correction
	UseManualDates  bool    `mapstructure:"use_manual_dates"` // consult the override table
	OverridesPath   string  `mapstructure:"overrides_path"`
	DateOnly        bool    `mapstructure:"date_only"` // drop time-of-day from end dates
}

// ReportConfig holds the selection thresholds and rendering mode
type ReportConfig struct {
	WindowDays            int     `mapstructure:"window_days"`
	ProfitFloor           float64 `mapstructure:"profit_floor"`
	TopN                  int     `mapstructure:"top_n"`
	Output                string  `mapstructure:"output"` // "csv" or "console"
	ConsoleTopK           int     `mapstructure:"console_top_k"`
	ExcludeManualNearTerm bool    `mapstructure:"exclude_manual_near_term"`
}

// TelegramConfig holds Telegram notification configuration
type TelegramConfig struct {
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	Enabled        bool          `mapstructure:"enabled"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
	TopK           int           `mapstructure:"top_k"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	setDefaults(v)

	// Enable environment variable override
	v.SetEnvPrefix("LONGSHOT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options.
// The advisor defaults are the reference values: an 850-dollar budget, the 10%
// PredictIt fee on profit, and the Rothschild 1.64 bias coefficient.
func setDefaults(v *viper.Viper) {
	v.SetDefault("predictit.api_base_url", "https://www.predictit.org/api")
	v.SetDefault("predictit.timeout", "30s")
	v.SetDefault("predictit.max_retries", 3)
	v.SetDefault("predictit.retry_delay_base", "1s")
	v.SetDefault("predictit.rate_limit", 0.0167) // about one request per minute
	v.SetDefault("predictit.rate_burst", 1)

	v.SetDefault("advisor.budget", 850.0)
	v.SetDefault("advisor.fee_rate", 0.10)
	v.SetDefault("advisor.bias_coefficient", 1.64)
	v.SetDefault("advisor.use_manual_dates", false)
	v.SetDefault("advisor.overrides_path", "./configs/end-date-overrides.json")
	v.SetDefault("advisor.date_only", true)

	v.SetDefault("report.window_days", 14)
	v.SetDefault("report.profit_floor", 100.0)
	v.SetDefault("report.top_n", 100)
	v.SetDefault("report.output", OutputCSV)
	v.SetDefault("report.console_top_k", 5)
	v.SetDefault("report.exclude_manual_near_term", true)

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")
	v.SetDefault("telegram.top_k", 5)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.PredictIt.APIBaseURL == "" {
		return fmt.Errorf("predictit.api_base_url is required")
	}
	if c.PredictIt.Timeout <= 0 {
		return fmt.Errorf("predictit.timeout must be positive")
	}

	if c.Advisor.Budget <= 0 {
		return fmt.Errorf("advisor.budget must be positive")
	}
	if c.Advisor.FeeRate < 0.0 || c.Advisor.FeeRate >= 1.0 {
		return fmt.Errorf("advisor.fee_rate must be in [0.0, 1.0)")
	}
	if c.Advisor.BiasCoefficient <= 0.0 {
		return fmt.Errorf("advisor.bias_coefficient must be positive")
	}
	if c.Advisor.UseManualDates && c.Advisor.OverridesPath == "" {
		return fmt.Errorf("advisor.overrides_path is required when advisor.use_manual_dates is enabled")
	}

	if c.Report.WindowDays < 1 {
		return fmt.Errorf("report.window_days must be at least 1")
	}
	if c.Report.TopN < 1 {
		return fmt.Errorf("report.top_n must be at least 1")
	}
	if c.Report.Output != OutputCSV && c.Report.Output != OutputConsole {
		return fmt.Errorf("report.output must be one of: csv, console")
	}
	if c.Report.Output == OutputConsole && c.Report.ConsoleTopK < 1 {
		return fmt.Errorf("report.console_top_k must be at least 1")
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
		if c.Telegram.TopK < 1 {
			return fmt.Errorf("telegram.top_k must be at least 1")
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
