package module

import (
	"gatehouse/internal/platform/config"
)

// Storage backends
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Options selects and parameterizes the event log backend
type Options struct {
	Backend  string
	FilePath string
}

// FromConfig reads STORE_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("STORE_")
	return Options{
		Backend:  sc.MayEnum("BACKEND", BackendFile, BackendFile, BackendPostgres),
		FilePath: sc.MayString("FILE_PATH", "./data/webhooks.json"),
	}
}
