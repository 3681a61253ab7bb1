package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zeronotes/secure-notes/internal/api/metrics"
	"github.com/zeronotes/secure-notes/internal/core/ports"
)

// NoteHandler handles HTTP requests for note operations. Every route sits
// behind the Auth middleware; the resolved username is threaded into each
// service call as the mandatory owner filter.
type NoteHandler struct {
	service ports.NoteService
}

func NewNoteHandler(service ports.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

// Create handles POST /api/notes.
//
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNoteRequest  true  "Note fields"
// @Success      201   {object}  noteResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	owner, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	note, err := h.service.Create(c.Request().Context(), ports.CreateNoteInput{
		Owner:            owner,
		Title:            req.Title,
		EncryptedContent: req.EncryptedContent,
		Salt:             req.Salt,
		IV:               req.IV,
	})
	if err != nil {
		return err
	}

	metrics.NotesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toNoteResponse(note))
}

// List handles GET /api/notes.
//
// @Summary      List the caller's notes
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   noteResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	owner, err := ctxUsername(c)
	if err != nil {
		return err
	}

	notes, err := h.service.List(c.Request().Context(), owner)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toNoteListResponse(notes))
}

// Get handles GET /api/notes/:id.
//
// @Summary      Get a note by id
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Note id"
// @Success      200  {object}  noteResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/notes/{id} [get]
func (h *NoteHandler) Get(c echo.Context) error {
	owner, err := ctxUsername(c)
	if err != nil {
		return err
	}

	note, err := h.service.Get(c.Request().Context(), owner, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Update handles PUT /api/notes/:id.
//
// @Summary      Partially update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Note id"
// @Param        body  body      updateNoteRequest  true  "Fields to update"
// @Success      200   {object}  noteResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/notes/{id} [put]
func (h *NoteHandler) Update(c echo.Context) error {
	owner, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	note, err := h.service.Update(c.Request().Context(), ports.UpdateNoteInput{
		Owner:            owner,
		ID:               c.Param("id"),
		Title:            req.Title,
		EncryptedContent: req.EncryptedContent,
		Salt:             req.Salt,
		IV:               req.IV,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Delete handles DELETE /api/notes/:id.
//
// @Summary      Delete a note
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Note id"
// @Success      200  {object}  deleteNoteResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	owner, err := ctxUsername(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), owner, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteNoteResponse{Message: "note deleted"})
}
