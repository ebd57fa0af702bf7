package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophsync/internal/flagx"
	"github.com/dmitrijs2005/gophsync/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "empty" so a partial file only overrides
// what it names.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	EncryptionKey  *string         `json:"encryption_key"`
	StorageDriver  *string         `json:"storage_driver"`
	StoragePath    *string         `json:"storage_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	Env            *string         `json:"env"`
}

// parseJson overlays cfg with values from the file named by -c or -config.
// Without either flag it does nothing. Read and unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.EncryptionKey, jc.EncryptionKey)
	setString(&cfg.StorageDriver, jc.StorageDriver)
	setString(&cfg.StoragePath, jc.StoragePath)
	setString(&cfg.Env, jc.Env)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
