package dialcoach

import "errors"

// Client construction and lifecycle errors.
var (
	// ErrNoDatabase indicates no database was configured.
	ErrNoDatabase = errors.New("dialcoach: no database configured, use WithSQLite, WithPostgres, or WithDatabaseURL")

	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("dialcoach: client is closed")

	// ErrNoProvider indicates no transcription/analysis provider was configured.
	ErrNoProvider = errors.New("dialcoach: no provider configured, use WithOpenAI or supply a Transcriber and TextGenerator")
)
