// Package index provides the client that mirrors documents into the search index.
//
// Each document is written with a single idempotent PUT to
// {url}/{index}/{docType}/{id}: the body fully replaces any existing document,
// so writing the same document twice leaves one document whose
// acknowledgment reports "updated" the second time.
//
// # Configuration
//
// The index name and document type default to "micro" and "items". Basic
// authentication is attached only when both user and password are configured.
//
// # Failures
//
// Requests are bounded by a per-request timeout. Transport errors, 5xx and 429
// responses are retried with exponential backoff up to MaxRetries extra
// attempts; other non-2xx answers fail immediately with *HTTPError. Callers
// treat any returned error as a failure of that one document.
//
// # Usage
//
//	client, err := index.NewClient(cfg.Index)
//	res, err := client.Upsert(ctx, index.Document{ID: 42, Fields: fields})
//	if err == nil && res.Outcome == index.OutcomeCreated { ... }
package index
