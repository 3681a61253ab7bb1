package service

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/rs/zerolog"

	"github.com/zeronotes/secure-notes/internal/core/domain"
	"github.com/zeronotes/secure-notes/internal/core/ports"
)

// NoteService implements owner-scoped note use cases. Encrypted content,
// salt, and iv pass through opaque; the service never transforms them.
type NoteService struct {
	repo   ports.NoteRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewNoteService(repo ports.NoteRepository, audit ports.AuditRecorder, logger zerolog.Logger) *NoteService {
	return &NoteService{repo: repo, audit: audit, logger: logger}
}

func (s *NoteService) Create(ctx context.Context, input ports.CreateNoteInput) (*domain.Note, error) {
	now := time.Now().UTC()
	note := &domain.Note{
		Owner:            input.Owner,
		Title:            input.Title,
		EncryptedContent: input.EncryptedContent,
		Salt:             input.Salt,
		IV:               input.IV,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := s.repo.Insert(ctx, note)
	if err != nil {
		s.logger.Error().Err(err).Str("owner", input.Owner).Msg("failed to create note")
		return nil, err
	}

	s.record(input.Owner, "note_create", created.ID, "ok")
	return created, nil
}

func (s *NoteService) List(ctx context.Context, owner string) ([]*domain.Note, error) {
	return s.repo.FindByOwner(ctx, owner)
}

func (s *NoteService) Get(ctx context.Context, owner, id string) (*domain.Note, error) {
	if !validNoteID(id) {
		return nil, domain.ErrMalformedNoteID
	}
	return s.repo.FindByID(ctx, owner, id)
}

// Update applies only the fields present in the input and refreshes
// updated_at. A note that does not exist or belongs to another owner
// yields domain.ErrNoteNotFound, identically in both cases.
func (s *NoteService) Update(ctx context.Context, input ports.UpdateNoteInput) (*domain.Note, error) {
	if !validNoteID(input.ID) {
		return nil, domain.ErrMalformedNoteID
	}

	patch := domain.NotePatch{
		Title:            input.Title,
		EncryptedContent: input.EncryptedContent,
		Salt:             input.Salt,
		IV:               input.IV,
	}

	updated, err := s.repo.Update(ctx, input.Owner, input.ID, patch)
	if err != nil {
		return nil, err
	}

	s.record(input.Owner, "note_update", input.ID, "ok")
	return updated, nil
}

func (s *NoteService) Delete(ctx context.Context, owner, id string) error {
	if !validNoteID(id) {
		return domain.ErrMalformedNoteID
	}

	if err := s.repo.Delete(ctx, owner, id); err != nil {
		return err
	}

	s.record(owner, "note_delete", id, "ok")
	return nil
}

// validNoteID gates id syntax before any owner-scoped lookup runs. A note
// id is a 24-character hex string (12 bytes); anything else is rejected as
// malformed rather than coerced into a not-found lookup.
func validNoteID(id string) bool {
	if len(id) != 24 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}

func (s *NoteService) record(owner, action, noteID, result string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ports.AuditEvent{
		Username: owner,
		Action:   action,
		NoteID:   noteID,
		Result:   result,
		At:       time.Now().UTC(),
	})
}
