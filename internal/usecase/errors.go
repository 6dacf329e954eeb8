package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrNotAuthorized         = errors.New("not authorized")
	ErrChapterClosed         = errors.New("chapter is closed")
	ErrEventSetMismatch      = errors.New("submission does not cover the chapter's events")
	ErrConflict              = errors.New("conflicting write")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
