// Package store is the record store adapter for inventory items.
//
// The Store interface is what the synchronization engine depends on; GormStore
// backs it with the injected GORM connection (MySQL in production, SQLite in
// tests). The store is the authority: the index only mirrors it.
package store
