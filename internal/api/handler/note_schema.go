package handler

import "time"

// Request and response types for note routes. The encrypted content, salt,
// and iv fields are opaque strings: the server stores and returns them
// unchanged, and their internal structure belongs to the client.

type createNoteRequest struct {
	Title            string `json:"title"             validate:"required"`
	EncryptedContent string `json:"encrypted_content" validate:"required"`
	Salt             string `json:"salt"              validate:"required"`
	IV               string `json:"iv"                validate:"required"`
}

// updateNoteRequest carries a partial update: absent fields stay nil and
// are left untouched by the service.
type updateNoteRequest struct {
	Title            *string `json:"title"`
	EncryptedContent *string `json:"encrypted_content"`
	Salt             *string `json:"salt"`
	IV               *string `json:"iv"`
}

type noteResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	EncryptedContent string    `json:"encrypted_content"`
	Salt             string    `json:"salt"`
	IV               string    `json:"iv"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type deleteNoteResponse struct {
	Message string `json:"message"`
}
