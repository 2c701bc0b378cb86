// Package secrets holds the registry of tenant secrets the receiver trusts
// The registry is immutable after startup and safe for concurrent reads
package secrets

import (
	"crypto/subtle"
	"strings"
)

// PreviewLen is how many leading characters of a secret survive into logs and responses
const PreviewLen = 8

// Registry is an ordered set of tenant secrets
// order is registration order and drives HMAC trial matching
// duplicates are kept as loaded and behave as a single effective secret
type Registry struct {
	entries []string
}

// Load splits a comma separated configuration value into a Registry
// each element is trimmed of surrounding whitespace and empty elements are dropped
func Load(raw string) *Registry {
	parts := strings.Split(raw, ",")
	entries := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		entries = append(entries, p)
	}
	return &Registry{entries: entries}
}

// Count reports how many secrets are registered
func (r *Registry) Count() int { return len(r.entries) }

// Empty reports whether no secrets are registered
func (r *Registry) Empty() bool { return len(r.entries) == 0 }

// Contains reports whether candidate matches a registered secret
// every entry is compared with constant-time equality and the scan
// never exits early so timing does not reveal match position
func (r *Registry) Contains(candidate string) bool {
	cb := []byte(candidate)
	found := 0
	for _, s := range r.entries {
		sb := []byte(s)
		if len(sb) == len(cb) {
			found |= subtle.ConstantTimeCompare(sb, cb)
		}
	}
	return found == 1
}

// ForEach visits secrets in registration order
// fn returning false stops the walk
func (r *Registry) ForEach(fn func(secret string) bool) {
	for _, s := range r.entries {
		if !fn(s) {
			return
		}
	}
}

// Preview returns the loggable prefix of a secret, never the full value
func Preview(secret string) string {
	if len(secret) <= PreviewLen {
		return secret + "..."
	}
	return secret[:PreviewLen] + "..."
}

// Previews returns the loggable prefix of every registered secret in order
func (r *Registry) Previews() []string {
	out := make([]string, 0, len(r.entries))
	for _, s := range r.entries {
		out = append(out, Preview(s))
	}
	return out
}
