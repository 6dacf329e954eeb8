package usecase

import (
	"context"
	"fmt"

	"github.com/pickemhq/pickem/internal/domain/book"
	"github.com/pickemhq/pickem/internal/domain/chapter"
	"github.com/pickemhq/pickem/internal/domain/user"
)

// Action names a gated operation on a book.
type Action string

const (
	ActionCreateBook    Action = "create_book"
	ActionManageChapter Action = "manage_chapter"
	ActionManageMembers Action = "manage_members"
	ActionSubmitPicks   Action = "submit_picks"
	ActionViewChapter   Action = "view_chapter"
)

// AuthzContext carries the facts a role check needs beyond the role itself.
type AuthzContext struct {
	SiteAdmin       bool
	ChapterID       string
	ChapterVisible  bool
	GuestChapterIDs []string
}

// Allow is the single authorization predicate every mutating operation
// consults. Callers surface a refusal as ErrNotAuthorized with no further
// diagnostics.
func Allow(action Action, role book.Role, actx AuthzContext) bool {
	switch action {
	case ActionCreateBook:
		return actx.SiteAdmin
	case ActionManageChapter:
		return role == book.RoleOwner || role == book.RoleAdmin
	case ActionManageMembers:
		return role == book.RoleOwner
	case ActionSubmitPicks, ActionViewChapter:
		sub := book.Subscription{Role: role, GuestChapterIDs: actx.GuestChapterIDs}
		return sub.CanViewChapter(actx.ChapterID, actx.ChapterVisible)
	default:
		return false
	}
}

// memberGate resolves a caller's subscription and applies Allow. Shared by
// every service that mutates book state.
type memberGate struct {
	bookRepo book.Repository
}

// subscription loads the caller's membership, mapping absence and the
// unauthorized role to ErrNotAuthorized.
func (g memberGate) subscription(ctx context.Context, bookID string, p user.Principal) (book.Subscription, error) {
	if p.UserID == "" {
		return book.Subscription{}, ErrNotAuthenticated
	}

	sub, exists, err := g.bookRepo.GetSubscription(ctx, bookID, p.UserID)
	if err != nil {
		return book.Subscription{}, fmt.Errorf("get subscription: %w", err)
	}
	if !exists || sub.Role == book.RoleUnauthorized {
		return book.Subscription{}, ErrNotAuthorized
	}

	return sub, nil
}

func (g memberGate) requireAdmin(ctx context.Context, bookID string, p user.Principal) (book.Subscription, error) {
	sub, err := g.subscription(ctx, bookID, p)
	if err != nil {
		return book.Subscription{}, err
	}
	if !Allow(ActionManageChapter, sub.Role, AuthzContext{}) {
		return book.Subscription{}, ErrNotAuthorized
	}

	return sub, nil
}

func (g memberGate) requireOwner(ctx context.Context, bookID string, p user.Principal) (book.Subscription, error) {
	sub, err := g.subscription(ctx, bookID, p)
	if err != nil {
		return book.Subscription{}, err
	}
	if !Allow(ActionManageMembers, sub.Role, AuthzContext{}) {
		return book.Subscription{}, ErrNotAuthorized
	}

	return sub, nil
}

func (g memberGate) requireChapterView(ctx context.Context, ch chapter.Chapter, p user.Principal) (book.Subscription, error) {
	sub, err := g.subscription(ctx, ch.BookID, p)
	if err != nil {
		return book.Subscription{}, err
	}
	actx := AuthzContext{
		ChapterID:       ch.ID,
		ChapterVisible:  ch.IsVisible,
		GuestChapterIDs: sub.GuestChapterIDs,
	}
	if !Allow(ActionViewChapter, sub.Role, actx) {
		return book.Subscription{}, ErrNotAuthorized
	}

	return sub, nil
}
