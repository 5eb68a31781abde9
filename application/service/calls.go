// Package service provides application services coordinating domain
// operations across stores and providers.
package service

import (
	"context"

	"github.com/dialcoach/dialcoach/domain/call"
)

// CallListParams configures sales call listing.
type CallListParams struct {
	Limit  int
	Offset int
}

// CallUpdateParams carries the mutable fields of a sales call. Nil fields are
// left unchanged.
type CallUpdateParams struct {
	Transcription *string
	Analysis      *string
}

// Calls provides CRUD operations over stored sales calls.
type Calls struct {
	store call.Store
}

// NewCalls creates a new Calls service.
func NewCalls(store call.Store) *Calls {
	return &Calls{store: store}
}

// Create validates and persists a new sales call. The storage engine assigns
// the id and both timestamps.
func (s *Calls) Create(ctx context.Context, transcription, analysis string) (call.SalesCall, error) {
	c := call.NewSalesCall(transcription, analysis)
	if err := c.Validate(); err != nil {
		return call.SalesCall{}, err
	}
	return s.store.Save(ctx, c)
}

// Get retrieves a sales call by ID.
func (s *Calls) Get(ctx context.Context, id int64) (call.SalesCall, error) {
	return s.store.Get(ctx, id)
}

// List returns sales calls, newest first.
func (s *Calls) List(ctx context.Context, params *CallListParams) ([]call.SalesCall, error) {
	opts := []call.Option{call.WithNewestFirst()}
	if params != nil && params.Limit > 0 {
		opts = append(opts, call.WithPagination(params.Limit, params.Offset)...)
	}
	return s.store.Find(ctx, opts...)
}

// Count returns the total number of stored sales calls.
func (s *Calls) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}

// Update applies the given changes to an existing sales call. The store runs
// the read-modify-write in a transaction; the domain helpers stamp
// updated_at and the store writes it through verbatim, since the table
// itself never refreshes the column.
func (s *Calls) Update(ctx context.Context, id int64, params CallUpdateParams) (call.SalesCall, error) {
	return s.store.Update(ctx, id, func(c call.SalesCall) (call.SalesCall, error) {
		if params.Transcription != nil {
			c = c.WithTranscription(*params.Transcription)
		}
		if params.Analysis != nil {
			c = c.WithAnalysis(*params.Analysis)
		}
		if err := c.Validate(); err != nil {
			return call.SalesCall{}, err
		}
		return c, nil
	})
}

// Delete removes a sales call by ID.
func (s *Calls) Delete(ctx context.Context, id int64) error {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, c)
}
