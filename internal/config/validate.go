package config

import (
	"errors"
	"fmt"
	"time"
)

// MaxFeedLimit is the upstream page-size ceiling for one markets query.
const MaxFeedLimit = 300

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Server.BindAddress == "" {
		return errors.New("server.bind_address is required")
	}

	if c.API.RestURL == "" {
		return errors.New("api.rest_url is required")
	}
	if c.API.MaxRetries < 0 {
		return errors.New("api.max_retries must be >= 0")
	}
	if c.API.RateLimitPerSecond < 1 {
		return errors.New("api.rate_limit_per_second must be >= 1")
	}

	if c.Feed.SeriesTicker == "" {
		return errors.New("feed.series_ticker is required")
	}
	if c.Feed.Limit < 1 || c.Feed.Limit > MaxFeedLimit {
		return fmt.Errorf("feed.limit must be between 1 and %d, got %d", MaxFeedLimit, c.Feed.Limit)
	}
	if c.Feed.Interval < time.Second {
		return fmt.Errorf("feed.interval must be >= 1s, got %v", c.Feed.Interval)
	}

	if c.Analysis.URL == "" {
		return errors.New("analysis.url is required")
	}
	if c.Analysis.Model == "" {
		return errors.New("analysis.model is required")
	}

	if c.History.Enabled {
		if err := c.Database.validate("database"); err != nil {
			return err
		}
		if c.History.BatchSize < 1 {
			return errors.New("history.batch_size must be >= 1")
		}
		if c.History.BufferSize < 1 {
			return errors.New("history.buffer_size must be >= 1")
		}
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
