package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// PublicPaths lists comma separated path prefixes served without the API key.
	PublicPaths string `mapstructure:"public_paths" default:"/health,/metrics,/swagger"`
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// PublicPrefixes splits PublicPaths into trimmed, non-empty prefixes.
func (c Config) PublicPrefixes() []string {
	var prefixes []string
	for _, p := range strings.Split(c.PublicPaths, ",") {
		if p = strings.TrimSpace(p); p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return prefixes
}
