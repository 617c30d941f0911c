// Package events consumes stock movement events from Kafka.
//
// A message whose handler fails is retried in place with exponential backoff
// (kafka.max_retries, kafka.retry_interval_ms). Handlers wrap errors that
// retrying cannot fix with Permanent. The offset is committed once the handler
// succeeds or the retries run out; an event that still fails is logged as
// dropped, so a malformed or persistently failing event never blocks its
// partition. Each message carries a Key built from topic, partition and offset
// that downstream handlers use for de-duplication.
package events
