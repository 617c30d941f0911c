// Package config provides configuration management for the inventory synchronizer.
//
// It loads an optional .env file with godotenv and then reads environment
// variables through Viper. Defaults come from the `default` struct tags of
// each section, and nested keys map to upper-case env names (index.doc_type
// becomes INDEX_DOC_TYPE).
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, public paths
//   - Log: logging level and format
//   - Database: record store connection (mysql, sqlite)
//   - Index: search index URL, credentials, index and document type, timeout
//   - Sync: re-sync mode, worker count, sweep interval
//   - Kafka: stock movement consumer
//   - Redis: event de-duplication
//   - Storage: S3/MinIO archive for reload reports
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Index.URL)
package config
