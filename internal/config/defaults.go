package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultLogLevel           = "info"
	DefaultBindAddress        = ":8080"
	DefaultRestURL            = "https://api.elections.kalshi.com/trade-api/v2"
	DefaultAPITimeout         = 10 * time.Second
	DefaultMaxRetries         = 3
	DefaultRateLimitPerSecond = 10
	DefaultSeriesTicker       = "KXNBAGAME"
	DefaultFeedStatus         = "open"
	DefaultFeedLimit          = 300
	DefaultPollInterval       = 30 * time.Second
	DefaultAnalysisURL        = "https://ai.gateway.lovable.dev/v1/chat/completions"
	DefaultAnalysisModel      = "google/gemini-2.5-flash"
	DefaultAnalysisTimeout    = 60 * time.Second
	DefaultDBPort             = 5432
	DefaultDBSSLMode          = "prefer"
	DefaultMaxConns           = 10
	DefaultMinConns           = 2
	DefaultHistoryBatchSize   = 500
	DefaultHistoryFlush       = 5 * time.Second
	DefaultHistoryBufferSize  = 4096
)

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}

	if c.Server.BindAddress == "" {
		c.Server.BindAddress = DefaultBindAddress
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}

	// API defaults
	if c.API.RestURL == "" {
		c.API.RestURL = DefaultRestURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RateLimitPerSecond == 0 {
		c.API.RateLimitPerSecond = DefaultRateLimitPerSecond
	}

	// Feed defaults
	if c.Feed.SeriesTicker == "" {
		c.Feed.SeriesTicker = DefaultSeriesTicker
	}
	if c.Feed.Status == "" {
		c.Feed.Status = DefaultFeedStatus
	}
	if c.Feed.Limit == 0 {
		c.Feed.Limit = DefaultFeedLimit
	}
	if c.Feed.Interval == 0 {
		c.Feed.Interval = DefaultPollInterval
	}

	// Analysis defaults
	if c.Analysis.URL == "" {
		c.Analysis.URL = DefaultAnalysisURL
	}
	if c.Analysis.Model == "" {
		c.Analysis.Model = DefaultAnalysisModel
	}
	if c.Analysis.Timeout == 0 {
		c.Analysis.Timeout = DefaultAnalysisTimeout
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// History defaults
	if c.History.BatchSize == 0 {
		c.History.BatchSize = DefaultHistoryBatchSize
	}
	if c.History.FlushInterval == 0 {
		c.History.FlushInterval = DefaultHistoryFlush
	}
	if c.History.BufferSize == 0 {
		c.History.BufferSize = DefaultHistoryBufferSize
	}
}
