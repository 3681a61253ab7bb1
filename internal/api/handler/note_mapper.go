package handler

import (
	"github.com/zeronotes/secure-notes/internal/core/domain"
)

// toNoteResponse maps a domain note to the HTTP response shape. The owner
// is deliberately omitted: it always equals the authenticated caller.
func toNoteResponse(n *domain.Note) noteResponse {
	return noteResponse{
		ID:               n.ID,
		Title:            n.Title,
		EncryptedContent: n.EncryptedContent,
		Salt:             n.Salt,
		IV:               n.IV,
		CreatedAt:        n.CreatedAt.UTC(),
		UpdatedAt:        n.UpdatedAt.UTC(),
	}
}

func toNoteListResponse(notes []*domain.Note) []noteResponse {
	out := make([]noteResponse, len(notes))
	for i, n := range notes {
		out[i] = toNoteResponse(n)
	}
	return out
}
