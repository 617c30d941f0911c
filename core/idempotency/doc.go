// Package idempotency de-duplicates stock adjustment events.
//
// A Guard claims an event key before the event is applied. RedisGuard stores
// claims with SETNX and a TTL so that redelivered Kafka messages and retried
// HTTP requests carrying the same Idempotency-Key are applied once. NopGuard
// is used when no Redis address is configured.
package idempotency
