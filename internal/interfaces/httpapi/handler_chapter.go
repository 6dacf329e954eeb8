package httpapi

import (
	"net/http"

	"github.com/pickemhq/pickem/internal/domain/chapter"
	"github.com/pickemhq/pickem/internal/domain/event"
	"github.com/pickemhq/pickem/internal/usecase"
)

func (h *Handler) CreateChapter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateChapter")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req createChapterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	bookID := r.PathValue("bookID")
	created, err := h.chapterService.CreateChapter(ctx, bookID, principal, usecase.CreateChapterInput{
		Title:  req.Title,
		Events: req.Events,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create chapter failed", "book_id", bookID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, chapterWithEventsToDTO(created))
}

func (h *Handler) ListChapters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListChapters")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	bookID := r.PathValue("bookID")
	chapters, err := h.chapterService.ListChapters(ctx, bookID, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "list chapters failed", "book_id", bookID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]chapterDTO, 0, len(chapters))
	for _, ch := range chapters {
		items = append(items, chapterToDTO(ch))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetChapter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetChapter")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	bookID := r.PathValue("bookID")
	chapterID := r.PathValue("chapterID")
	item, err := h.chapterService.GetChapter(ctx, bookID, chapterID, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "get chapter failed", "book_id", bookID, "chapter_id", chapterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, chapterWithEventsToDTO(item))
}

func (h *Handler) UpdateChapterStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateChapterStatus")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req updateChapterStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	bookID := r.PathValue("bookID")
	chapterID := r.PathValue("chapterID")
	if err := h.chapterService.UpdateStatus(ctx, bookID, chapterID, principal, req.IsOpen, req.IsVisible); err != nil {
		h.logger.WarnContext(ctx, "update chapter status failed", "book_id", bookID, "chapter_id", chapterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) DeleteChapter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteChapter")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	bookID := r.PathValue("bookID")
	chapterID := r.PathValue("chapterID")
	if err := h.chapterService.DeleteChapter(ctx, bookID, chapterID, principal); err != nil {
		h.logger.WarnContext(ctx, "delete chapter failed", "book_id", bookID, "chapter_id", chapterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

type createChapterRequest struct {
	Title  string           `json:"title" validate:"required,max=200"`
	Events []event.Contents `json:"events" validate:"required,min=1"`
}

type updateChapterStatusRequest struct {
	IsOpen    bool `json:"is_open"`
	IsVisible bool `json:"is_visible"`
}

type chapterDTO struct {
	ID        string `json:"id"`
	BookID    string `json:"bookId"`
	Title     string `json:"title"`
	IsOpen    bool   `json:"isOpen"`
	IsVisible bool   `json:"isVisible"`
}

type eventDTO struct {
	ID       string         `json:"id"`
	Contents event.Contents `json:"contents"`
}

type chapterWithEventsDTO struct {
	Chapter chapterDTO `json:"chapter"`
	Events  []eventDTO `json:"events"`
}

func chapterToDTO(ch chapter.Chapter) chapterDTO {
	return chapterDTO{
		ID:        ch.ID,
		BookID:    ch.BookID,
		Title:     ch.Title,
		IsOpen:    ch.IsOpen,
		IsVisible: ch.IsVisible,
	}
}

func eventToDTO(ev event.Event) eventDTO {
	return eventDTO{ID: ev.ID, Contents: ev.Contents}
}

func chapterWithEventsToDTO(item usecase.ChapterWithEvents) chapterWithEventsDTO {
	events := make([]eventDTO, 0, len(item.Events))
	for _, ev := range item.Events {
		events = append(events, eventToDTO(ev))
	}
	return chapterWithEventsDTO{
		Chapter: chapterToDTO(item.Chapter),
		Events:  events,
	}
}
