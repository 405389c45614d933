package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is bumped when the envelope shape changes incompatibly.
const envelopeVersion = 1

// Envelope is the uniform wrapper around every API response body. Clients
// branch on success and read either data or the error fields.
type Envelope struct {
	V       int    `json:"v" doc:"Envelope version"`
	Success bool   `json:"success" doc:"Whether the request succeeded"`
	Data    any    `json:"data,omitempty" doc:"Response payload on success"`
	Error   string `json:"error,omitempty" doc:"Error message on failure"`
	Code    string `json:"code,omitempty" doc:"Machine-readable error code"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// EnvelopeTransformer wraps every response body in the standard envelope.
// Registered as a huma transformer so handlers return bare payloads.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return &Envelope{
			V:       envelopeVersion,
			Success: false,
			Error:   apiErr.Message,
			Code:    apiErr.Code,
			Details: apiErr.Details,
		}, nil
	}

	// huma's built-in error model (schema validation failures and the
	// like) also comes through here.
	if errModel, ok := v.(*huma.ErrorModel); ok {
		return &Envelope{
			V:       envelopeVersion,
			Success: false,
			Error:   errModel.Detail,
			Code:    statusToCode(errModel.Status),
			Details: errModel.Errors,
		}, nil
	}

	return &Envelope{
		V:       envelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
