package events

import "time"

// Config holds the stock-movement topic consumer settings.
type Config struct {
	// Enabled starts the consumer alongside the HTTP server.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Brokers is the bootstrap.servers list.
	Brokers string `mapstructure:"brokers" default:"localhost:9092"`
	// Topic carries stock adjustment events.
	Topic string `mapstructure:"topic" default:"inventory-adjustments"`
	// GroupID is the consumer group.
	GroupID string `mapstructure:"group_id" default:"inventory-sync"`
	// PollTimeoutMs bounds a single read so shutdown is noticed promptly.
	PollTimeoutMs int `mapstructure:"poll_timeout_ms" default:"1000"`
	// MaxRetries is the number of extra attempts for a message whose handler failed.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// RetryIntervalMs is the initial backoff between attempts.
	RetryIntervalMs int `mapstructure:"retry_interval_ms" default:"500"`
}

// PollTimeout returns the read timeout, one second when unset.
func (c Config) PollTimeout() time.Duration {
	if c.PollTimeoutMs <= 0 {
		return time.Second
	}
	return time.Duration(c.PollTimeoutMs) * time.Millisecond
}

// RetryInterval returns the initial backoff, 500ms when unset.
func (c Config) RetryInterval() time.Duration {
	if c.RetryIntervalMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.RetryIntervalMs) * time.Millisecond
}

func (c Config) maxTries() uint {
	if c.MaxRetries < 0 {
		return 1
	}
	return uint(c.MaxRetries) + 1
}
