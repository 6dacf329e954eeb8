package httpapi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/pickemhq/pickem/internal/domain/pick"
	"github.com/pickemhq/pickem/internal/usecase"
)

const maxSubmissionBytes = 1 << 20

func (h *Handler) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPicks")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSubmissionBytes))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	sub, err := pick.DecodeSubmission(body)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	bookID := r.PathValue("bookID")
	chapterID := r.PathValue("chapterID")
	if err := h.submissionService.Submit(ctx, bookID, chapterID, principal, sub); err != nil {
		h.logger.WarnContext(ctx, "submit picks failed",
			"book_id", bookID,
			"chapter_id", chapterID,
			"user_id", principal.UserID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "submitted"})
}

func (h *Handler) GetMyPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyPicks")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	bookID := r.PathValue("bookID")
	chapterID := r.PathValue("chapterID")
	picks, err := h.submissionService.MyPicks(ctx, bookID, chapterID, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "get picks failed", "book_id", bookID, "chapter_id", chapterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]pickDTO, 0, len(picks))
	for _, p := range picks {
		items = append(items, pickToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type pickDTO struct {
	EventID  string        `json:"eventId"`
	Contents pick.Contents `json:"contents"`
	Points   *int          `json:"points,omitempty"`
}

func pickToDTO(p pick.Pick) pickDTO {
	return pickDTO{
		EventID:  p.EventID,
		Contents: p.Contents,
		Points:   p.Points,
	}
}
