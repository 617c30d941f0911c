package idempotency

import "time"

// Config holds the Redis connection used to de-duplicate events.
// An empty Addr disables de-duplication.
type Config struct {
	Addr       string `mapstructure:"addr" default:""`
	Password   string `mapstructure:"password" default:""`
	DB         int    `mapstructure:"db" default:"0"`
	KeyPrefix  string `mapstructure:"key_prefix" default:"inventory-sync:event:"`
	TTLSeconds int    `mapstructure:"ttl_seconds" default:"86400"`
}

// Enabled reports whether a Redis address is configured.
func (c Config) Enabled() bool {
	return c.Addr != ""
}

// TTL returns how long a claimed key is remembered, 24h when unset.
func (c Config) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.TTLSeconds) * time.Second
}
