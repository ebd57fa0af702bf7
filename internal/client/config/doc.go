// Package config loads runtime configuration for the gophsync CLI.
//
// # Sources and precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # Supported flags
//
//	-a string   backend API base URL
//	-k string   encryption key for persisted state
//	-s string   storage driver: sqlite, file or redis
//	-p string   storage path: database file, directory or redis:// url
//	-t string   request timeout, e.g. 30s
//	-e string   environment name (development enables the default key)
//
// # Environment
//
//	GOPHSYNC_API_BASE_URL (falls back to API_BASE_URL)
//	GOPHSYNC_ENCRYPTION_KEY
//	GOPHSYNC_STORAGE_DRIVER
//	GOPHSYNC_STORAGE_PATH
//	GOPHSYNC_REQUEST_TIMEOUT
//	GOPHSYNC_ENV
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:3001",
//	  "encryption_key": "change-me",
//	  "storage_driver": "sqlite",
//	  "storage_path": "gophsync.db",
//	  "request_timeout": "30s",
//	  "env": "production"
//	}
//
// LoadConfig never validates; call (*Config).Validate before use.
package config
