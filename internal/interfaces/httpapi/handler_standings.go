package httpapi

import (
	"net/http"

	"github.com/pickemhq/pickem/internal/usecase"
)

func (h *Handler) GetChapterTotals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetChapterTotals")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	bookID := r.PathValue("bookID")
	chapterID := r.PathValue("chapterID")
	rows, err := h.standingsService.ChapterTotals(ctx, bookID, chapterID, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "chapter totals failed", "book_id", bookID, "chapter_id", chapterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingRowsToDTO(rows))
}

func (h *Handler) GetBookLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBookLeaderboard")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	bookID := r.PathValue("bookID")
	rows, err := h.standingsService.BookLeaderboard(ctx, bookID, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "leaderboard failed", "book_id", bookID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingRowsToDTO(rows))
}

func (h *Handler) GetChapterTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetChapterTable")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	bookID := r.PathValue("bookID")
	chapterID := r.PathValue("chapterID")
	table, err := h.standingsService.ChapterTable(ctx, bookID, chapterID, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "chapter table failed", "book_id", bookID, "chapter_id", chapterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, chapterTableToDTO(table))
}

func (h *Handler) RecalculateBook(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateBook")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	bookID := r.PathValue("bookID")
	if err := h.standingsService.RecalculateBook(ctx, bookID, principal); err != nil {
		h.logger.WarnContext(ctx, "recalculate book failed", "book_id", bookID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "recalculated"})
}

type standingRowDTO struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Total       int    `json:"total"`
}

type spreadCellDTO struct {
	Selection string `json:"selection"`
	Wager     int    `json:"wager"`
	Status    string `json:"status"`
}

type inputCellDTO struct {
	Answer string `json:"answer"`
	Wager  int    `json:"wager"`
	Status string `json:"status"`
}

type tableCellDTO struct {
	EventID string          `json:"eventId"`
	Spreads []spreadCellDTO `json:"spreads,omitempty"`
	Input   *inputCellDTO   `json:"input,omitempty"`
}

type tableRowDTO struct {
	UserID      string         `json:"userId"`
	DisplayName string         `json:"displayName"`
	Cells       []tableCellDTO `json:"cells"`
}

type chapterTableDTO struct {
	Events []eventDTO    `json:"events"`
	Rows   []tableRowDTO `json:"rows"`
}

func standingRowsToDTO(rows []usecase.StandingRow) []standingRowDTO {
	items := make([]standingRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, standingRowDTO{
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
			Total:       row.Total,
		})
	}
	return items
}

func chapterTableToDTO(table usecase.ChapterTable) chapterTableDTO {
	events := make([]eventDTO, 0, len(table.Events))
	for _, ev := range table.Events {
		events = append(events, eventToDTO(ev))
	}

	rows := make([]tableRowDTO, 0, len(table.Rows))
	for _, row := range table.Rows {
		cells := make([]tableCellDTO, 0, len(row.Cells))
		for _, cell := range row.Cells {
			dto := tableCellDTO{EventID: cell.EventID}
			for _, sc := range cell.Spreads {
				dto.Spreads = append(dto.Spreads, spreadCellDTO{
					Selection: string(sc.Selection),
					Wager:     sc.Wager,
					Status:    string(sc.Status),
				})
			}
			if cell.Input != nil {
				dto.Input = &inputCellDTO{
					Answer: cell.Input.Answer,
					Wager:  cell.Input.Wager,
					Status: string(cell.Input.Status),
				}
			}
			cells = append(cells, dto)
		}
		rows = append(rows, tableRowDTO{
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
			Cells:       cells,
		})
	}

	return chapterTableDTO{Events: events, Rows: rows}
}
