// Package domain holds DTOs for the webhook dispatch surface
package domain

import (
	"encoding/json"
	"net/http"
)

// AssetDetails describes the governed data asset an access request targets
type AssetDetails struct {
	GUID          string `json:"guid"           validate:"required"`
	Name          string `json:"name"           validate:"required"`
	QualifiedName string `json:"qualified_name" validate:"required"`
	URL           string `json:"url"            validate:"required"`
	TypeName      string `json:"type_name"      validate:"required"`
	ConnectorName string `json:"connector_name" validate:"required"`
	DatabaseName  string `json:"database_name"  validate:"required"`
	SchemaName    string `json:"schema_name"    validate:"required"`
}

// Approver is one participant in the approval chain
type Approver struct {
	Name       string `json:"name"        validate:"required"`
	Comment    string `json:"comment"`
	ApprovedAt string `json:"approved_at" validate:"required"`
	Email      string `json:"email"       validate:"required"`
}

// ApprovalDetails tracks how the request was approved
type ApprovalDetails struct {
	IsAutoApproved bool       `json:"is_auto_approved"`
	Approvers      []Approver `json:"approvers" validate:"dive"`
}

// FormResponse carries answers to a custom request form
type FormResponse struct {
	FormTitle string         `json:"form_title" validate:"required"`
	Response  map[string]any `json:"response"`
}

// EventPayload is the body of a data access request event
type EventPayload struct {
	AssetDetails     AssetDetails    `json:"asset_details"     validate:"required"`
	RequestTimestamp string          `json:"request_timestamp" validate:"required"`
	ApprovalDetails  ApprovalDetails `json:"approval_details"  validate:"required"`
	Requestor        string          `json:"requestor"         validate:"required"`
	RequestorEmail   string          `json:"requestor_email"   validate:"required"`
	RequestorComment string          `json:"requestor_comment"`
	Forms            []FormResponse  `json:"forms"             validate:"omitempty,dive"`
}

// WebhookData is the top level event structure from the platform
type WebhookData struct {
	Type    string       `json:"type"    validate:"required"`
	Payload EventPayload `json:"payload" validate:"required"`
}

// Inbound is one request as seen by the dispatcher, request-scoped
// Headers is http.Header so lookups stay canonical for every caller
type Inbound struct {
	Body    []byte
	Headers http.Header
	Remote  string
}

// Ack is the success response for an accepted event
type Ack struct {
	Status            string `json:"status"`
	Message           string `json:"message"`
	Type              string `json:"type,omitempty"`
	AssetName         string `json:"asset_name,omitempty"`
	SignatureVerified bool   `json:"signature_verified"`
	VerifiedWith      string `json:"verified_with_secret,omitempty"`
}

// Rejection is the failure response, the reason is a taxonomy tag only
type Rejection struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// Disposition names a terminal dispatch state
type Disposition int

// Terminal states, one per request, no retries
const (
	DispositionEcho Disposition = iota
	DispositionAccepted
	DispositionRejected
)

// Result is the dispatcher's decision for one inbound request
type Result struct {
	Disposition Disposition

	// Echo holds the verbatim challenge bytes for DispositionEcho
	Echo json.RawMessage

	// Ack is set for DispositionAccepted
	Ack Ack

	// Reason is set for DispositionRejected
	Reason string
}
