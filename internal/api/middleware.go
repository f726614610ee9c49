package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is the wire version of the response envelope. Bump only on
// breaking envelope changes; clients check this before parsing.
const envelopeVersion = 1

// Envelope is the uniform JSON wrapper around every API response.
// The version field is named exactly "v"; clients depend on it.
type Envelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every response body in the standard envelope.
// Registered as a huma transformer so handlers return plain response structs.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	// Error bodies produced by RegisterErrorHandler.
	if apiErr, ok := v.(*APIError); ok {
		return &Envelope{
			V:       envelopeVersion,
			Success: false,
			Error:   apiErr.Message,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	// Huma's built-in error model (validation failures before our handler runs).
	if errModel, ok := v.(*huma.ErrorModel); ok {
		return &Envelope{
			V:       envelopeVersion,
			Success: false,
			Error:   errModel.Detail,
			Message: errModel.Detail,
			Details: errModel.Errors,
		}, nil
	}

	success := !strings.HasPrefix(status, "4") && !strings.HasPrefix(status, "5")
	return &Envelope{
		V:       envelopeVersion,
		Success: success,
		Data:    v,
	}, nil
}
