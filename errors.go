package bizportal

import "errors"

// Exported errors for library consumers.
var (
	// ErrNoDatabase indicates no database was configured.
	ErrNoDatabase = errors.New("bizportal: no database configured")

	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("bizportal: client is closed")
)
