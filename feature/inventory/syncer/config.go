package syncer

import "time"

const (
	// ModeFull re-synchronizes every record after each adjustment.
	ModeFull = "full"
	// ModeTargeted upserts only the adjusted record and leaves full
	// reconciliation to the periodic sweep.
	ModeTargeted = "targeted"
)

// Config holds configuration for the synchronization engine.
type Config struct {
	// Mode selects how the index is re-synchronized after an adjustment (full, targeted).
	Mode string `mapstructure:"mode" default:"full"`
	// Workers bounds concurrent upserts during a full reload.
	Workers int `mapstructure:"workers" default:"4"`
	// SweepIntervalSeconds runs a periodic full reload when positive.
	SweepIntervalSeconds int `mapstructure:"sweep_interval_seconds" default:"0"`
}

// SweepInterval returns the periodic reload interval, zero when disabled.
func (c Config) SweepInterval() time.Duration {
	if c.SweepIntervalSeconds <= 0 {
		return 0
	}
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return 1
	}
	return c.Workers
}
