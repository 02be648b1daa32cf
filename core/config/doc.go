// Package config provides configuration management for the catalog service.
//
// It utilizes Viper for loading configuration from environment variables,
// config files, and command-line flags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL connection details
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Distributor: SFTP drop host, credentials, and feed path
//   - Cache: redis-backed HTTP response cache
//   - Scheduler: periodic sync cron settings
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
