package service

import "errors"

// Service-level errors.
var (
	// ErrProcessingFailed indicates transcription or analysis failed.
	ErrProcessingFailed = errors.New("processing failed")

	// ErrNoTranscriber indicates no transcription provider is configured.
	ErrNoTranscriber = errors.New("no transcription provider configured")

	// ErrNoTextGenerator indicates no text generation provider is configured.
	ErrNoTextGenerator = errors.New("no text generation provider configured")
)
