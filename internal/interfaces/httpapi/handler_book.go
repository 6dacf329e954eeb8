package httpapi

import (
	"net/http"

	"github.com/pickemhq/pickem/internal/domain/book"
	"github.com/pickemhq/pickem/internal/usecase"
)

func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateBook")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req createBookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.bookService.CreateBook(ctx, principal, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "create book failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, bookToDTO(created))
}

func (h *Handler) ListMyBooks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyBooks")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	books, err := h.bookService.ListMyBooks(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "list books failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]bookDTO, 0, len(books))
	for _, b := range books {
		items = append(items, bookToDTO(b))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMembers")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	bookID := r.PathValue("bookID")
	members, err := h.bookService.ListMembers(ctx, bookID, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "list members failed", "book_id", bookID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]memberDTO, 0, len(members))
	for _, m := range members {
		items = append(items, memberToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddMember")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	bookID := r.PathValue("bookID")
	err := h.bookService.AddMember(ctx, bookID, principal, usecase.AddMemberInput{
		UserID:          req.UserID,
		DisplayName:     req.DisplayName,
		Role:            book.Role(req.Role),
		GuestChapterIDs: req.GuestChapterIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add member failed", "book_id", bookID, "member_id", req.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, map[string]string{"status": "added"})
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveMember")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	bookID := r.PathValue("bookID")
	userID := r.PathValue("userID")
	if err := h.bookService.RemoveMember(ctx, bookID, userID, principal); err != nil {
		h.logger.WarnContext(ctx, "remove member failed", "book_id", bookID, "member_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) ChangeMemberRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ChangeMemberRole")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req changeRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	bookID := r.PathValue("bookID")
	userID := r.PathValue("userID")
	err := h.bookService.ChangeRole(ctx, bookID, userID, principal, book.Role(req.Role), req.GuestChapterIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "change role failed", "book_id", bookID, "member_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "updated"})
}

type createBookRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type addMemberRequest struct {
	UserID          string   `json:"user_id" validate:"required"`
	DisplayName     string   `json:"display_name" validate:"max=100"`
	Role            string   `json:"role" validate:"required,oneof=admin participant guest"`
	GuestChapterIDs []string `json:"guest_chapter_ids" validate:"dive,required"`
}

type changeRoleRequest struct {
	Role            string   `json:"role" validate:"required,oneof=owner admin participant guest"`
	GuestChapterIDs []string `json:"guest_chapter_ids" validate:"dive,required"`
}

type bookDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type memberDTO struct {
	UserID          string   `json:"userId"`
	DisplayName     string   `json:"displayName"`
	Role            string   `json:"role"`
	GuestChapterIDs []string `json:"guestChapterIds,omitempty"`
}

func bookToDTO(b book.Book) bookDTO {
	return bookDTO{ID: b.ID, Name: b.Name}
}

func memberToDTO(m usecase.Member) memberDTO {
	return memberDTO{
		UserID:          m.Subscription.UserID,
		DisplayName:     m.User.DisplayName,
		Role:            string(m.Subscription.Role),
		GuestChapterIDs: m.Subscription.GuestChapterIDs,
	}
}
