// Package health reports whether the synchronizer can do its job.
//
// GET /health pings the record store, checks that the inventory table exposes
// every column the Item model maps, and pings the search index. It answers
// 200 when everything is reachable and 503 with the same report otherwise.
package health
