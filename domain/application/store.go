package application

import (
	"context"
	"time"

	"github.com/chamberhub/bizportal/domain/repository"
)

// ApplicationStore persists applications together with their extension rows.
type ApplicationStore interface {
	repository.Store[Application]

	// Get loads an application and its extension row.
	Get(ctx context.Context, id string) (Application, error)

	// Create inserts the parent row and its extension row.
	Create(ctx context.Context, app Application) (Application, error)

	// Update writes the parent row and replaces the extension row.
	Update(ctx context.Context, app Application) (Application, error)

	// StatusCounts returns the number of applications per status.
	StatusCounts(ctx context.Context) (map[Status]int64, error)

	// KnowledgeSharingOrphans returns KNOWLEDGE_SHARING applications that
	// have no extension row.
	KnowledgeSharingOrphans(ctx context.Context) ([]string, error)

	// DeleteByIDs hard-deletes parents. Only the maintenance cleanup uses it.
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}

// NoteStore persists the append-only review log.
type NoteStore interface {
	repository.Store[ReviewNote]

	// Append inserts a note and returns it with its ID.
	Append(ctx context.Context, note ReviewNote) (ReviewNote, error)

	// ForApplication returns an application's notes oldest first.
	ForApplication(ctx context.Context, applicationID string, includeInternal bool) ([]ReviewNote, error)

	// DeleteByApplicationIDs removes notes of hard-deleted applications.
	DeleteByApplicationIDs(ctx context.Context, ids []string) (int64, error)
}

// CertificateStore persists issued certificates.
type CertificateStore interface {
	repository.Store[Certificate]

	// Issue numbers and inserts the certificate for an approved application.
	Issue(ctx context.Context, app Application, at time.Time) (Certificate, error)

	// ForApplication returns the certificate of an application.
	ForApplication(ctx context.Context, applicationID string) (Certificate, error)

	// ByNumber returns a certificate by its public number.
	ByNumber(ctx context.Context, number string) (Certificate, error)
}
