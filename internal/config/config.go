package config

import "time"

// Config is the root configuration for a courtside instance.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	API      APIConfig      `yaml:"api"`
	Feed     FeedConfig     `yaml:"feed"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Database DBConfig       `yaml:"database"`
	History  HistoryConfig  `yaml:"history"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// ServerConfig holds the HTTP server settings for the UI-facing API.
type ServerConfig struct {
	BindAddress string   `yaml:"bind_address"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// APIConfig holds Kalshi API settings.
type APIConfig struct {
	RestURL            string        `yaml:"rest_url"`
	APIKey             string        `yaml:"api_key"` // optional; market data is public
	Timeout            time.Duration `yaml:"timeout"`
	MaxRetries         int           `yaml:"max_retries"`
	RateLimitPerSecond int           `yaml:"rate_limit_per_second"`
}

// FeedConfig selects which markets are polled and how often.
type FeedConfig struct {
	SeriesTicker string        `yaml:"series_ticker"`
	Status       string        `yaml:"status"`
	Limit        int           `yaml:"limit"`
	Interval     time.Duration `yaml:"interval"`
}

// AnalysisConfig holds the chat-completion backend for the analysis proxy.
type AnalysisConfig struct {
	URL     string        `yaml:"url"`
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// DBConfig holds the PostgreSQL connection for snapshot history.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// HistoryConfig holds the snapshot history writer settings. History is
// optional: when disabled no database connection is made.
type HistoryConfig struct {
	Enabled       bool          `yaml:"enabled"`
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	BufferSize    int           `yaml:"buffer_size"`
}
