package ports

import (
	"context"

	"github.com/zeronotes/secure-notes/internal/core/domain"
)

// CreateNoteInput carries all data needed to create a note. Owner is the
// authenticated identity resolved by the transport layer.
type CreateNoteInput struct {
	Owner            string
	Title            string
	EncryptedContent string
	Salt             string
	IV               string
}

// UpdateNoteInput carries a partial update. Nil fields are left untouched.
type UpdateNoteInput struct {
	Owner            string
	ID               string
	Title            *string
	EncryptedContent *string
	Salt             *string
	IV               *string
}

// NoteService defines use-case operations for notes. The owner identity is
// threaded explicitly through every call rather than read from ambient
// request state, so ownership scoping stays auditable in isolation.
type NoteService interface {
	Create(ctx context.Context, input CreateNoteInput) (*domain.Note, error)
	List(ctx context.Context, owner string) ([]*domain.Note, error)
	Get(ctx context.Context, owner, id string) (*domain.Note, error)
	Update(ctx context.Context, input UpdateNoteInput) (*domain.Note, error)
	Delete(ctx context.Context, owner, id string) error
}
