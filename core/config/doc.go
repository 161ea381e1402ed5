// Package config provides configuration management for the CRM matcher.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file, with defaults declared as struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, fetch timeout)
//   - Database: MySQL/SQLite connection details
//   - Storage: S3/MinIO credentials and export bucket settings
//   - CRM: external CRM API base URL, token, pacing and retry bounds
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
