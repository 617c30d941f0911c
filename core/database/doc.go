// Package database handles record store connections and schema inspection.
//
// It wraps GORM to configure MySQL (production) or SQLite (local runs and
// tests) connections from the application's configuration.
//
// # Connect
//
// Connect opens the pool, applies pool limits and verifies the connection with
// a bounded ping. The returned *gorm.DB is long-lived and injected into the
// inventory record store.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the health feature confirm that the
// inventory table exposes the columns the synchronizer reads. No migrations are
// performed.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "inventory", "id", "stock")
package database
