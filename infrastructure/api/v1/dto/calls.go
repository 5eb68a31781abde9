// Package dto defines the request and response shapes of the v1 API.
package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/dialcoach/dialcoach/infrastructure/api/jsonapi"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CallAttributes holds the attributes of a sales call resource. Timestamps
// serialize as ISO8601; a NULL column serializes as null.
type CallAttributes struct {
	Transcription string           `json:"transcription"`
	Analysis      string           `json:"analysis"`
	CreatedAt     jsonapi.DateTime `json:"created_at"`
	UpdatedAt     jsonapi.DateTime `json:"updated_at"`
}

// CallData is a JSON:API resource object for a sales call.
type CallData struct {
	Type       string         `json:"type"`
	ID         string         `json:"id"`
	Attributes CallAttributes `json:"attributes"`
}

// CallResponse wraps a single sales call resource.
type CallResponse struct {
	Data CallData `json:"data"`
}

// CallListResponse wraps a list of sales call resources with pagination.
type CallListResponse struct {
	Data  []CallData `json:"data"`
	Meta  any        `json:"meta,omitempty"`
	Links any        `json:"links,omitempty"`
}

// CallCreateAttributes holds the writable attributes for creating a call.
type CallCreateAttributes struct {
	Transcription string `json:"transcription" validate:"required"`
	Analysis      string `json:"analysis" validate:"required"`
}

// CallCreateRequest is the body for POST /api/v1/calls.
type CallCreateRequest struct {
	Data struct {
		Type       string               `json:"type" validate:"omitempty,eq=sales_call"`
		Attributes CallCreateAttributes `json:"attributes"`
	} `json:"data"`
}

// Validate checks the request against its validation tags.
func (r CallCreateRequest) Validate() error {
	if err := validate.Struct(r.Data); err != nil {
		return err
	}
	return validate.Struct(r.Data.Attributes)
}

// CallUpdateAttributes holds the writable attributes for updating a call.
// Nil fields are left unchanged.
type CallUpdateAttributes struct {
	Transcription *string `json:"transcription,omitempty"`
	Analysis      *string `json:"analysis,omitempty"`
}

// CallUpdateRequest is the body for PATCH /api/v1/calls/{id}.
type CallUpdateRequest struct {
	Data struct {
		Attributes CallUpdateAttributes `json:"attributes"`
	} `json:"data"`
}

// AnalyzeResponse is the flat response of the analyze endpoints, matching the
// shape produced by the original upload service.
type AnalyzeResponse struct {
	ID            int64  `json:"id"`
	Transcription string `json:"transcription"`
	Analysis      string `json:"analysis"`
}
