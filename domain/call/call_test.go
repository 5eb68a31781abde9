package call

import (
	"errors"
	"testing"
	"time"
)

func TestNewSalesCall_LeavesTimestampsZero(t *testing.T) {
	c := NewSalesCall("hello", "nice work")

	if c.ID() != 0 {
		t.Errorf("ID = %d, want 0", c.ID())
	}
	if !c.CreatedAt().IsZero() {
		t.Errorf("CreatedAt = %v, want zero", c.CreatedAt())
	}
	if !c.UpdatedAt().IsZero() {
		t.Errorf("UpdatedAt = %v, want zero", c.UpdatedAt())
	}
	if c.IsPersisted() {
		t.Error("IsPersisted = true for new call")
	}
}

func TestReconstructSalesCall(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	updated := time.Date(2025, 3, 2, 11, 0, 0, 0, time.UTC)

	c := ReconstructSalesCall(42, "transcript", "analysis", created, updated)

	if c.ID() != 42 {
		t.Errorf("ID = %d, want 42", c.ID())
	}
	if c.Transcription() != "transcript" {
		t.Errorf("Transcription = %q", c.Transcription())
	}
	if c.Analysis() != "analysis" {
		t.Errorf("Analysis = %q", c.Analysis())
	}
	if !c.CreatedAt().Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", c.CreatedAt(), created)
	}
	if !c.UpdatedAt().Equal(updated) {
		t.Errorf("UpdatedAt = %v, want %v", c.UpdatedAt(), updated)
	}
	if !c.IsPersisted() {
		t.Error("IsPersisted = false for reconstructed call")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		transcription string
		analysis      string
		wantErr       bool
	}{
		{"valid", "hello", "good call", false},
		{"empty transcription", "", "good call", true},
		{"whitespace transcription", "   \n\t", "good call", true},
		{"empty analysis", "hello", "", true},
		{"whitespace analysis", "hello", "  ", true},
		{"both empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewSalesCall(tt.transcription, tt.analysis)
			err := c.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("Validate() = %v, want ErrValidation", err)
				}
			} else if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestWithTranscription_StampsUpdatedAt(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	c := ReconstructSalesCall(1, "old", "analysis", created, created)

	before := time.Now()
	updated := c.WithTranscription("new")

	if updated.Transcription() != "new" {
		t.Errorf("Transcription = %q, want %q", updated.Transcription(), "new")
	}
	if updated.UpdatedAt().Before(before) {
		t.Errorf("UpdatedAt = %v, want >= %v", updated.UpdatedAt(), before)
	}
	// Original value object is unchanged.
	if c.Transcription() != "old" {
		t.Errorf("original mutated: Transcription = %q", c.Transcription())
	}
	if !c.UpdatedAt().Equal(created) {
		t.Errorf("original mutated: UpdatedAt = %v", c.UpdatedAt())
	}
}

func TestWithAnalysis_StampsUpdatedAt(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	c := ReconstructSalesCall(1, "transcript", "old", created, created)

	before := time.Now()
	updated := c.WithAnalysis("new")

	if updated.Analysis() != "new" {
		t.Errorf("Analysis = %q, want %q", updated.Analysis(), "new")
	}
	if updated.UpdatedAt().Before(before) {
		t.Errorf("UpdatedAt = %v, want >= %v", updated.UpdatedAt(), before)
	}
	if updated.CreatedAt() != created {
		t.Errorf("CreatedAt changed: %v", updated.CreatedAt())
	}
}

func TestTouch(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	c := ReconstructSalesCall(1, "transcript", "analysis", created, created)

	before := time.Now()
	touched := c.Touch()

	if touched.UpdatedAt().Before(before) {
		t.Errorf("UpdatedAt = %v, want >= %v", touched.UpdatedAt(), before)
	}
	if touched.Transcription() != c.Transcription() || touched.Analysis() != c.Analysis() {
		t.Error("Touch changed content fields")
	}
}
