// Package metrics exposes Prometheus collectors for the synchronizer.
//
// Collectors are registered on an injected registry rather than the global
// default one, so tests can build isolated instances.
package metrics
