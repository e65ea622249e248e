// Package config provides configuration management for the reconciler.
//
// It utilizes Viper for loading configuration from an optional config.yaml,
// environment variables and a .env file. Defaults come from the `default`
// struct tags of every section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL or SQLite connection details
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Reconcile: default match mode, compare-by columns, workers, row limit, cache TTL
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts, _ := cfg.Reconcile.Options()
package config
