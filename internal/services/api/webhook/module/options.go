package module

import (
	"gatehouse/internal/platform/config"
)

// Options carries the authentication configuration
type Options struct {
	// SecretsCSV is the comma separated tenant secret list
	SecretsCSV string

	// RequireSignature gates enforcement, the bypass exists for
	// non-production setups only and defaults to on
	RequireSignature bool
}

// FromConfig reads WEBHOOK_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	wc := cfg.Prefix("WEBHOOK_")
	return Options{
		SecretsCSV:       wc.MayString("SECRET", ""),
		RequireSignature: wc.MayBool("REQUIRE_SIGNATURE", true),
	}
}
