package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zeronotes/secure-notes/internal/core/domain"
	"github.com/zeronotes/secure-notes/internal/core/ports"
)

type stubNoteService struct {
	createFn func(ctx context.Context, input ports.CreateNoteInput) (*domain.Note, error)
	listFn   func(ctx context.Context, owner string) ([]*domain.Note, error)
	getFn    func(ctx context.Context, owner, id string) (*domain.Note, error)
	updateFn func(ctx context.Context, input ports.UpdateNoteInput) (*domain.Note, error)
	deleteFn func(ctx context.Context, owner, id string) error
}

func (s *stubNoteService) Create(ctx context.Context, input ports.CreateNoteInput) (*domain.Note, error) {
	return s.createFn(ctx, input)
}

func (s *stubNoteService) List(ctx context.Context, owner string) ([]*domain.Note, error) {
	return s.listFn(ctx, owner)
}

func (s *stubNoteService) Get(ctx context.Context, owner, id string) (*domain.Note, error) {
	return s.getFn(ctx, owner, id)
}

func (s *stubNoteService) Update(ctx context.Context, input ports.UpdateNoteInput) (*domain.Note, error) {
	return s.updateFn(ctx, input)
}

func (s *stubNoteService) Delete(ctx context.Context, owner, id string) error {
	return s.deleteFn(ctx, owner, id)
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, username string) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("username", username)
	return c
}

func TestNoteHandler_Create_Success(t *testing.T) {
	e := newEcho()
	now := time.Now().UTC()
	stub := &stubNoteService{
		createFn: func(ctx context.Context, input ports.CreateNoteInput) (*domain.Note, error) {
			if input.Owner != "alice" {
				t.Fatalf("expected owner alice, got %q", input.Owner)
			}
			if input.Title != "shopping" || input.EncryptedContent != "ENC1" || input.Salt != "S1" || input.IV != "I1" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Note{
				ID: "64b0c8a9e4b0f1a2d3c4e5f6", Owner: input.Owner, Title: input.Title,
				EncryptedContent: input.EncryptedContent, Salt: input.Salt, IV: input.IV,
				CreatedAt: now, UpdatedAt: now,
			}, nil
		},
	}
	h := NewNoteHandler(stub)

	body := strings.NewReader(`{"title":"shopping","encrypted_content":"ENC1","salt":"S1","iv":"I1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/notes", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "alice")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "64b0c8a9e4b0f1a2d3c4e5f6" || resp["encrypted_content"] != "ENC1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["owner"]; ok {
		t.Fatalf("owner should not appear in the response")
	}
}

func TestNoteHandler_Create_Unauthenticated(t *testing.T) {
	e := newEcho()
	stub := &stubNoteService{
		createFn: func(ctx context.Context, input ports.CreateNoteInput) (*domain.Note, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewNoteHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestNoteHandler_Create_MissingFields(t *testing.T) {
	e := newEcho()
	stub := &stubNoteService{
		createFn: func(ctx context.Context, input ports.CreateNoteInput) (*domain.Note, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewNoteHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"title":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "alice")

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}

func TestNoteHandler_List_Success(t *testing.T) {
	e := newEcho()
	stub := &stubNoteService{
		listFn: func(ctx context.Context, owner string) ([]*domain.Note, error) {
			if owner != "alice" {
				t.Fatalf("expected owner alice, got %q", owner)
			}
			return []*domain.Note{
				{ID: "64b0c8a9e4b0f1a2d3c4e5f6", Owner: owner, Title: "one"},
				{ID: "64b0c8a9e4b0f1a2d3c4e5f7", Owner: owner, Title: "two"},
			}, nil
		},
	}
	h := NewNoteHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "alice")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(resp))
	}
}

func TestNoteHandler_Get_NotFound(t *testing.T) {
	e := newEcho()
	stub := &stubNoteService{
		getFn: func(ctx context.Context, owner, id string) (*domain.Note, error) {
			return nil, domain.ErrNoteNotFound
		},
	}
	h := NewNoteHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/notes/64b0c8a9e4b0f1a2d3c4e5f6", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "bob")
	c.SetParamNames("id")
	c.SetParamValues("64b0c8a9e4b0f1a2d3c4e5f6")

	if err := h.Get(c); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestNoteHandler_Get_MalformedID(t *testing.T) {
	e := newEcho()
	stub := &stubNoteService{
		getFn: func(ctx context.Context, owner, id string) (*domain.Note, error) {
			return nil, domain.ErrMalformedNoteID
		},
	}
	h := NewNoteHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/notes/abc", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "alice")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.Get(c); !errors.Is(err, domain.ErrMalformedNoteID) {
		t.Fatalf("expected ErrMalformedNoteID, got %v", err)
	}
}

func TestNoteHandler_Update_PartialFields(t *testing.T) {
	e := newEcho()
	stub := &stubNoteService{
		updateFn: func(ctx context.Context, input ports.UpdateNoteInput) (*domain.Note, error) {
			if input.Owner != "alice" || input.ID != "64b0c8a9e4b0f1a2d3c4e5f6" {
				t.Fatalf("unexpected input: %+v", input)
			}
			if input.Title == nil || *input.Title != "groceries" {
				t.Fatalf("expected title patch, got %+v", input.Title)
			}
			if input.EncryptedContent != nil || input.Salt != nil || input.IV != nil {
				t.Fatalf("absent fields must stay nil: %+v", input)
			}
			return &domain.Note{ID: input.ID, Owner: input.Owner, Title: *input.Title}, nil
		},
	}
	h := NewNoteHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/api/notes/64b0c8a9e4b0f1a2d3c4e5f6", strings.NewReader(`{"title":"groceries"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "alice")
	c.SetParamNames("id")
	c.SetParamValues("64b0c8a9e4b0f1a2d3c4e5f6")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestNoteHandler_Delete_Success(t *testing.T) {
	e := newEcho()
	stub := &stubNoteService{
		deleteFn: func(ctx context.Context, owner, id string) error {
			if owner != "alice" || id != "64b0c8a9e4b0f1a2d3c4e5f6" {
				t.Fatalf("unexpected args: %s %s", owner, id)
			}
			return nil
		},
	}
	h := NewNoteHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/notes/64b0c8a9e4b0f1a2d3c4e5f6", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "alice")
	c.SetParamNames("id")
	c.SetParamValues("64b0c8a9e4b0f1a2d3c4e5f6")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestNoteHandler_Delete_NotFound(t *testing.T) {
	e := newEcho()
	stub := &stubNoteService{
		deleteFn: func(ctx context.Context, owner, id string) error {
			return domain.ErrNoteNotFound
		},
	}
	h := NewNoteHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/notes/64b0c8a9e4b0f1a2d3c4e5f6", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "bob")
	c.SetParamNames("id")
	c.SetParamValues("64b0c8a9e4b0f1a2d3c4e5f6")

	if err := h.Delete(c); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}
