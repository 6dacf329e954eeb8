package httpapi

import (
	"fmt"
	"net/http"

	"github.com/pickemhq/pickem/internal/domain/event"
	"github.com/pickemhq/pickem/internal/usecase"
)

func (h *Handler) RecordAnswers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordAnswers")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req recordAnswersRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	answers := make([]usecase.EventAnswers, 0, len(req.Answers))
	for _, a := range req.Answers {
		spreads := make([]event.Outcome, 0, len(a.Spreads))
		for _, raw := range a.Spreads {
			outcome, err := event.ParseOutcome(raw)
			if err != nil {
				writeError(ctx, w, fmt.Errorf("%w: event %s: %v", usecase.ErrInvalidInput, a.EventID, err))
				return
			}
			spreads = append(spreads, outcome)
		}
		answers = append(answers, usecase.EventAnswers{
			EventID: a.EventID,
			Spreads: spreads,
			Answers: a.Answers,
		})
	}

	bookID := r.PathValue("bookID")
	chapterID := r.PathValue("chapterID")
	if err := h.answerService.RecordAnswers(ctx, bookID, chapterID, principal, answers); err != nil {
		h.logger.WarnContext(ctx, "record answers failed", "book_id", bookID, "chapter_id", chapterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "graded"})
}

type recordAnswersRequest struct {
	Answers []eventAnswersRequest `json:"answers" validate:"required,min=1,dive"`
}

type eventAnswersRequest struct {
	EventID string   `json:"event_id" validate:"required"`
	Spreads []string `json:"spreads" validate:"dive,required"`
	Answers []string `json:"answers"`
}
