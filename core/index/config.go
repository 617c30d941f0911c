package index

import "time"

const (
	// DefaultIndex is used when no index name is configured.
	DefaultIndex = "micro"
	// DefaultDocType is used when no document type is configured.
	DefaultDocType = "items"
	// DefaultTimeout bounds a single request when no timeout is configured.
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration for the search index endpoint.
type Config struct {
	// URL is the base URL of the index (e.g., http://localhost:9200).
	URL string `mapstructure:"url" default:"http://localhost:9200"`
	// User is the basic auth username. Auth is sent only when User and Password are both set.
	User string `mapstructure:"user" default:""`
	// Password is the basic auth password.
	Password string `mapstructure:"password" default:""`
	// Index is the index name documents are written to.
	Index string `mapstructure:"index" default:"micro"`
	// DocType is the document type path segment.
	DocType string `mapstructure:"doc_type" default:"items"`
	// TimeoutSeconds bounds each request round-trip.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// MaxRetries is the number of extra attempts for transport errors and 5xx responses.
	MaxRetries int `mapstructure:"max_retries" default:"2"`
}

// IndexName returns the configured index or DefaultIndex.
func (c Config) IndexName() string {
	if c.Index == "" {
		return DefaultIndex
	}
	return c.Index
}

// DocTypeName returns the configured document type or DefaultDocType.
func (c Config) DocTypeName() string {
	if c.DocType == "" {
		return DefaultDocType
	}
	return c.DocType
}

// HasCredentials reports whether basic auth should be attached.
func (c Config) HasCredentials() bool {
	return c.User != "" && c.Password != ""
}

// Timeout returns the per-request timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
