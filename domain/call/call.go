// Package call provides the domain types for stored sales-call records.
package call

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrValidation indicates a sales call violates the storage contract.
var ErrValidation = errors.New("invalid sales call")

// SalesCall represents one transcription/analysis pair.
// This is an immutable value object identified by its ID once persisted.
//
// The backing table does not auto-refresh updated_at on modification;
// the update helpers (WithTranscription, WithAnalysis, Touch) set it
// explicitly, and callers that bypass them keep the prior value.
type SalesCall struct {
	id            int64
	transcription string
	analysis      string
	createdAt     time.Time
	updatedAt     time.Time
}

// NewSalesCall creates a sales call for new instances (not yet persisted).
// Timestamps are left zero so the storage engine assigns its defaults at
// insert time.
func NewSalesCall(transcription, analysis string) SalesCall {
	return SalesCall{
		id:            0,
		transcription: transcription,
		analysis:      analysis,
	}
}

// ReconstructSalesCall recreates a sales call from persistence (for store use).
func ReconstructSalesCall(
	id int64,
	transcription string,
	analysis string,
	createdAt time.Time,
	updatedAt time.Time,
) SalesCall {
	return SalesCall{
		id:            id,
		transcription: transcription,
		analysis:      analysis,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ID returns the call's database identifier (0 if not yet persisted).
func (c SalesCall) ID() int64 {
	return c.id
}

// Transcription returns the call transcript text.
func (c SalesCall) Transcription() string {
	return c.transcription
}

// Analysis returns the coaching analysis text.
func (c SalesCall) Analysis() string {
	return c.analysis
}

// CreatedAt returns when the call record was created.
func (c SalesCall) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns the last explicitly recorded modification time.
func (c SalesCall) UpdatedAt() time.Time {
	return c.updatedAt
}

// IsPersisted returns true once the storage engine has assigned an ID.
func (c SalesCall) IsPersisted() bool {
	return c.id != 0
}

// Validate enforces the NOT NULL contract on transcription and analysis.
func (c SalesCall) Validate() error {
	if strings.TrimSpace(c.transcription) == "" {
		return fmt.Errorf("%w: transcription is required", ErrValidation)
	}
	if strings.TrimSpace(c.analysis) == "" {
		return fmt.Errorf("%w: analysis is required", ErrValidation)
	}
	return nil
}

// WithTranscription returns a copy with the transcription replaced and
// updated_at set to now.
func (c SalesCall) WithTranscription(transcription string) SalesCall {
	c.transcription = transcription
	c.updatedAt = time.Now()
	return c
}

// WithAnalysis returns a copy with the analysis replaced and updated_at
// set to now.
func (c SalesCall) WithAnalysis(analysis string) SalesCall {
	c.analysis = analysis
	c.updatedAt = time.Now()
	return c
}

// Touch returns a copy with updated_at set to now.
func (c SalesCall) Touch() SalesCall {
	c.updatedAt = time.Now()
	return c
}
