// Package challenge classifies inbound bodies as URL validation handshakes
//
// Webhook platforms probe a newly configured URL before enabling real
// traffic and expect the probe body reflected back byte for byte, so a
// positive classification carries the original bytes for the echo
package challenge

import "encoding/json"

// markerKeys are the exact top level keys that mark a validation probe
// case-sensitive, consulted as data so the set can grow without new control flow
var markerKeys = []string{
	"atlan-webhook",
	"challenge",
	"verification_token",
	"token",
	"key",
}

// Result is the outcome of classifying one body
type Result struct {
	IsChallenge bool
	// Echo holds the original body bytes when IsChallenge is true
	Echo []byte
}

// Classify decides whether body is a validation handshake
// a body that fails to parse as a JSON object is not a challenge
// an object with no keys at all is a challenge
func Classify(body []byte) Result {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return Result{}
	}
	if len(doc) == 0 {
		return Result{IsChallenge: true, Echo: body}
	}
	for _, k := range markerKeys {
		if _, ok := doc[k]; ok {
			return Result{IsChallenge: true, Echo: body}
		}
	}
	return Result{}
}
