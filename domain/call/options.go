package call

import "time"

// WithID filters by the "id" column.
func WithID(id int64) Option {
	return WithCondition("id", id)
}

// WithIDIn filters by the "id" column using IN.
func WithIDIn(ids []int64) Option {
	return WithConditionIn("id", ids)
}

// WithCreatedAfter filters calls created after the given time.
func WithCreatedAfter(t time.Time) Option {
	return WithConditionGreaterThan("created_at", t)
}

// WithCreatedBefore filters calls created before the given time.
func WithCreatedBefore(t time.Time) Option {
	return WithConditionLessThan("created_at", t)
}

// WithNewestFirst orders results by creation time, newest first.
func WithNewestFirst() Option {
	return WithOrderDesc("created_at")
}
