package config

import (
	"os"
	"time"
)

// parseEnv overlays cfg with non-empty environment variables. A malformed
// GOPHSYNC_REQUEST_TIMEOUT panics like a malformed flag.
func parseEnv(cfg *Config) {
	if v := firstEnv("GOPHSYNC_API_BASE_URL", "API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("GOPHSYNC_ENCRYPTION_KEY"); v != "" {
		cfg.EncryptionKey = v
	}
	if v := os.Getenv("GOPHSYNC_STORAGE_DRIVER"); v != "" {
		cfg.StorageDriver = v
	}
	if v := os.Getenv("GOPHSYNC_STORAGE_PATH"); v != "" {
		cfg.StoragePath = v
	}
	if v := os.Getenv("GOPHSYNC_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv("GOPHSYNC_ENV"); v != "" {
		cfg.Env = v
	}
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
