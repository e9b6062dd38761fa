package persistence

import (
	"context"
	"fmt"

	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/domain/repository"
	"github.com/chamberhub/bizportal/internal/database"
)

// NoteStore implements application.NoteStore using GORM.
type NoteStore struct {
	database.Repository[application.ReviewNote, ReviewNoteModel]
}

// NewNoteStore creates a new NoteStore.
func NewNoteStore(db database.Database) NoteStore {
	return NoteStore{
		Repository: database.NewRepository[application.ReviewNote, ReviewNoteModel](db, ReviewNoteMapper{}, "review note"),
	}
}

// Append inserts a note. Notes are never updated.
func (s NoteStore) Append(ctx context.Context, note application.ReviewNote) (application.ReviewNote, error) {
	if note.ID() != 0 {
		return application.ReviewNote{}, fmt.Errorf("append review note: note %d already stored", note.ID())
	}
	return s.Create(ctx, note)
}

// ForApplication returns an application's notes oldest first.
func (s NoteStore) ForApplication(ctx context.Context, applicationID string, includeInternal bool) ([]application.ReviewNote, error) {
	opts := []repository.Option{application.WithApplicationID(applicationID)}
	if !includeInternal {
		opts = append(opts, repository.WithCondition("internal", false))
	}
	opts = append(opts, application.WithNoteOrder()...)
	return s.Find(ctx, opts...)
}

// DeleteByApplicationIDs removes all notes of the given applications.
func (s NoteStore) DeleteByApplicationIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.DeleteBy(ctx, application.WithApplicationIDIn(ids))
}
