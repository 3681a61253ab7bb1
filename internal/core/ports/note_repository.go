package ports

import (
	"context"

	"github.com/zeronotes/secure-notes/internal/core/domain"
)

// NoteRepository defines persistence operations for notes. Every read and
// mutation takes the owner as a mandatory filter alongside the id; a note
// is never visible to, or affected by, a different owner.
type NoteRepository interface {
	// Insert persists a new note and returns it with the assigned id.
	Insert(ctx context.Context, note *domain.Note) (*domain.Note, error)
	// FindByOwner returns all notes belonging to owner, in store order.
	FindByOwner(ctx context.Context, owner string) ([]*domain.Note, error)
	// FindByID retrieves the note matching both id and owner.
	FindByID(ctx context.Context, owner, id string) (*domain.Note, error)
	// Update applies the non-nil patch fields and refreshes updated_at,
	// returning the note as stored after the update.
	Update(ctx context.Context, owner, id string, patch domain.NotePatch) (*domain.Note, error)
	Delete(ctx context.Context, owner, id string) error
}
