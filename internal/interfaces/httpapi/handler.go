package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/pickemhq/pickem/internal/domain/user"
	"github.com/pickemhq/pickem/internal/platform/logging"
	"github.com/pickemhq/pickem/internal/usecase"
)

type Handler struct {
	bookService       *usecase.BookService
	chapterService    *usecase.ChapterService
	teamService       *usecase.TeamService
	submissionService *usecase.SubmissionService
	answerService     *usecase.AnswerService
	standingsService  *usecase.StandingsService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	bookService *usecase.BookService,
	chapterService *usecase.ChapterService,
	teamService *usecase.TeamService,
	submissionService *usecase.SubmissionService,
	answerService *usecase.AnswerService,
	standingsService *usecase.StandingsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		bookService:       bookService,
		chapterService:    chapterService,
		teamService:       teamService,
		submissionService: submissionService,
		answerService:     answerService,
		standingsService:  standingsService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSON(r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func requirePrincipal(ctx context.Context, w http.ResponseWriter) (user.Principal, bool) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrNotAuthenticated))
		return user.Principal{}, false
	}
	return principal, true
}
