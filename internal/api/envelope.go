package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// Envelope provides a consistent JSON response structure. Every success
// response carries the payload under data; error responses come from
// APIError and skip the envelope.
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// EnvelopeTransformer wraps successful response bodies in the standard
// envelope. Error bodies already carry their own structure.
func EnvelopeTransformer(ctx huma.Context, status string, v any) (any, error) {
	if v == nil {
		return v, nil
	}
	if _, isErr := v.(*APIError); isErr {
		return v, nil
	}
	if status >= "400" {
		return v, nil
	}
	return &Envelope{Success: true, Data: v}, nil
}
