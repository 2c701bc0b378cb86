// Package domain holds DTOs and ports for the stored webhook event log
package domain

import (
	"encoding/json"
	"time"
)

// Record is one accepted webhook as persisted, ordered by arrival
type Record struct {
	Type              string          `json:"type"`
	AssetName         string          `json:"asset_name,omitempty"`
	Method            string          `json:"verified_method,omitempty"`
	SignatureVerified bool            `json:"signature_verified"`
	// VerifiedWith is the matched secret preview, never a full secret
	VerifiedWith string          `json:"verified_with_secret,omitempty"`
	Payload      json.RawMessage `json:"payload"`
	ReceivedAt   time.Time       `json:"received_at"`
}

// ListOutput is the read surface's list shape
type ListOutput struct {
	Count    int      `json:"count"`
	Webhooks []Record `json:"webhooks"`
}
