package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dialcoach/dialcoach/domain/call"
	"github.com/dialcoach/dialcoach/infrastructure/provider"
)

// coachSystemPrompt is the system role for the analysis chat completion.
const coachSystemPrompt = "You are a professional sales coach who gives supportive feedback."

// analysisTemperature matches the sampling temperature of the coaching prompt.
const analysisTemperature = 0.7

// coachPrompt wraps a transcript in the coaching instructions.
func coachPrompt(transcript string) string {
	return fmt.Sprintf(`
You're a supportive and encouraging sales coach.

Please analyze the following sales call and provide friendly, constructive feedback directly to the salesperson. Focus on what they did well, areas they can improve, and give specific, practical tips to help them boost their sales performance.

Your response should be:
- Empathetic and motivating
- Easy to understand
- Actionable and not too formal

Transcript:
"""
%s
"""
`, transcript)
}

// Analyzer turns audio recordings of sales calls into stored
// transcription/analysis pairs.
type Analyzer struct {
	transcriber provider.Transcriber
	generator   provider.TextGenerator
	calls       *Calls
	logger      *slog.Logger
}

// NewAnalyzer creates a new Analyzer service.
func NewAnalyzer(
	transcriber provider.Transcriber,
	generator provider.TextGenerator,
	calls *Calls,
	logger *slog.Logger,
) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		transcriber: transcriber,
		generator:   generator,
		calls:       calls,
		logger:      logger,
	}
}

// AnalyzeAudio transcribes the recording, runs the coaching analysis over the
// transcript, and persists the resulting sales call. Provider failures are
// logged with their cause and collapsed into ErrProcessingFailed.
func (s *Analyzer) AnalyzeAudio(ctx context.Context, audio io.Reader, filename string) (call.SalesCall, error) {
	if s.transcriber == nil {
		return call.SalesCall{}, ErrNoTranscriber
	}
	if s.generator == nil {
		return call.SalesCall{}, ErrNoTextGenerator
	}

	transcription, err := s.transcriber.Transcribe(ctx, provider.NewTranscriptionRequest(audio, filename))
	if err != nil {
		s.logger.ErrorContext(ctx, "transcription failed", "filename", filename, "error", err)
		return call.SalesCall{}, fmt.Errorf("%w: %w", ErrProcessingFailed, err)
	}

	analysis, err := s.analyze(ctx, transcription.Text())
	if err != nil {
		s.logger.ErrorContext(ctx, "analysis failed", "filename", filename, "error", err)
		return call.SalesCall{}, fmt.Errorf("%w: %w", ErrProcessingFailed, err)
	}

	c, err := s.calls.Create(ctx, transcription.Text(), analysis)
	if err != nil {
		return call.SalesCall{}, err
	}

	s.logger.InfoContext(ctx, "sales call analyzed",
		"id", c.ID(),
		"transcription_chars", len(c.Transcription()),
		"analysis_chars", len(c.Analysis()),
	)
	return c, nil
}

// Reanalyze runs the coaching analysis again over a stored call's transcript
// and saves the new analysis. The domain helper stamps updated_at.
func (s *Analyzer) Reanalyze(ctx context.Context, id int64) (call.SalesCall, error) {
	if s.generator == nil {
		return call.SalesCall{}, ErrNoTextGenerator
	}

	c, err := s.calls.Get(ctx, id)
	if err != nil {
		return call.SalesCall{}, err
	}

	analysis, err := s.analyze(ctx, c.Transcription())
	if err != nil {
		s.logger.ErrorContext(ctx, "reanalysis failed", "id", id, "error", err)
		return call.SalesCall{}, fmt.Errorf("%w: %w", ErrProcessingFailed, err)
	}

	return s.calls.Update(ctx, id, CallUpdateParams{Analysis: &analysis})
}

// analyze runs the coaching chat completion over a transcript.
func (s *Analyzer) analyze(ctx context.Context, transcript string) (string, error) {
	req := provider.NewChatCompletionRequest([]provider.Message{
		provider.SystemMessage(coachSystemPrompt),
		provider.UserMessage(coachPrompt(transcript)),
	}).WithTemperature(analysisTemperature)

	resp, err := s.generator.ChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Content(), nil
}
