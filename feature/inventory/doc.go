// Package inventory exposes the synchronization engine to its event sources.
//
// Stock movement events arrive either from the Kafka topic (HandleMessage)
// or over HTTP, and both paths go through Service.Adjust so de-duplication
// and metrics behave the same way.
//
// # Endpoints
//
//	POST /inventory/adjustments   apply {"itemId":42,"count":3}
//	POST /inventory/reload        run a full reload, returns the report
//	GET  /inventory/items/:id     read a record from the store
//
// Subpackages hold the pieces the engine is built from: models, store
// (record store adapter), document (encoder) and syncer (engine, sweeper,
// report archive).
package inventory
