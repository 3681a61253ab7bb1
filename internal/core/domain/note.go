package domain

import (
	"errors"
	"time"
)

// Note is an owner-scoped record holding client-encrypted content. The
// server never inspects or transforms EncryptedContent, Salt, or IV; they
// are stored and returned byte-for-byte.
type Note struct {
	ID               string    `json:"id"`
	Owner            string    `json:"owner"`
	Title            string    `json:"title"`
	EncryptedContent string    `json:"encrypted_content"`
	Salt             string    `json:"salt"`
	IV               string    `json:"iv"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NotePatch carries a partial update. Nil fields are left untouched.
type NotePatch struct {
	Title            *string
	EncryptedContent *string
	Salt             *string
	IV               *string
}

// Empty reports whether the patch would change no fields.
func (p NotePatch) Empty() bool {
	return p.Title == nil && p.EncryptedContent == nil && p.Salt == nil && p.IV == nil
}

// ErrNoteNotFound is returned both when no note has the given id and when
// the note exists but belongs to a different owner. Collapsing the two
// prevents an existence leak across identities.
var ErrNoteNotFound = errors.New("note not found")

// ErrMalformedNoteID marks an id that is not syntactically valid. It is
// raised before any owner-scoped lookup runs.
var ErrMalformedNoteID = errors.New("malformed note id")

var ErrStoreUnavailable = errors.New("store unavailable")
