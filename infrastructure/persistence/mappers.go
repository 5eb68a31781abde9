package persistence

import (
	"database/sql"
	"time"

	"github.com/dialcoach/dialcoach/domain/call"
)

// SalesCallMapper converts between call.SalesCall domain objects and
// SalesCallModel database entities.
type SalesCallMapper struct{}

// ToDomain converts a SalesCallModel to a call.SalesCall. NULL timestamps
// surface as the zero time.
func (SalesCallMapper) ToDomain(model SalesCallModel) call.SalesCall {
	return call.ReconstructSalesCall(
		model.ID,
		model.Transcription,
		model.Analysis,
		model.CreatedAt.Time,
		model.UpdatedAt.Time,
	)
}

// ToModel converts a call.SalesCall to a SalesCallModel.
func (SalesCallMapper) ToModel(c call.SalesCall) SalesCallModel {
	return SalesCallModel{
		ID:            c.ID(),
		Transcription: c.Transcription(),
		Analysis:      c.Analysis(),
		CreatedAt:     nullTime(c.CreatedAt()),
		UpdatedAt:     nullTime(c.UpdatedAt()),
	}
}

// nullTime maps the zero time to NULL. On insert the zero value is omitted so
// the column default applies; on update it writes NULL, which the nullable
// columns accept.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
