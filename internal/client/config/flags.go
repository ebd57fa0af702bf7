package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/gophsync/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. os.Args is
// filtered with flagx.FilterArgs first, so flags owned by other components
// (such as -c) do not break parsing. Parse errors panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-s", "-p", "-t", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend API base URL")
	fs.StringVar(&cfg.EncryptionKey, "k", cfg.EncryptionKey, "encryption key for persisted state")
	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver (sqlite|file|redis)")
	fs.StringVar(&cfg.StoragePath, "p", cfg.StoragePath, "storage path")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.Env, "e", cfg.Env, "environment name")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
