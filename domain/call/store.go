package call

import "context"

// Store persists sales calls.
type Store interface {
	// Save creates or updates a sales call and returns the persisted entity
	// with its engine-assigned fields populated.
	Save(ctx context.Context, c SalesCall) (SalesCall, error)

	// Get retrieves a sales call by ID.
	Get(ctx context.Context, id int64) (SalesCall, error)

	// Update loads the sales call, applies mutate, and persists the result
	// atomically, so concurrent updates cannot interleave between the read
	// and the write. A mutate error aborts the update and leaves the row
	// unchanged.
	Update(ctx context.Context, id int64, mutate func(SalesCall) (SalesCall, error)) (SalesCall, error)

	// Find retrieves sales calls matching the given options.
	Find(ctx context.Context, options ...Option) ([]SalesCall, error)

	// Count returns the number of sales calls matching the given options.
	Count(ctx context.Context, options ...Option) (int64, error)

	// Delete removes a sales call.
	Delete(ctx context.Context, c SalesCall) error
}
