package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pickemhq/pickem/internal/domain/book"
	"github.com/pickemhq/pickem/internal/domain/user"
	idgen "github.com/pickemhq/pickem/internal/platform/id"
	"github.com/pickemhq/pickem/internal/platform/logging"
)

// Member pairs a subscription with the member's profile.
type Member struct {
	Subscription book.Subscription
	User         user.User
}

// BookService manages books and their memberships. A book has exactly one
// Owner at all times; ownership moves via ChangeRole.
type BookService struct {
	gate     memberGate
	bookRepo book.Repository
	userRepo user.Repository
	idGen    idgen.Generator
	logger   *logging.Logger
}

func NewBookService(
	bookRepo book.Repository,
	userRepo user.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *BookService {
	if logger == nil {
		logger = logging.Default()
	}

	return &BookService{
		gate:     memberGate{bookRepo: bookRepo},
		bookRepo: bookRepo,
		userRepo: userRepo,
		idGen:    idGen,
		logger:   logger,
	}
}

// CreateBook creates a pool with the caller as Owner. Site-admin only.
func (s *BookService) CreateBook(ctx context.Context, p user.Principal, name string) (book.Book, error) {
	ctx, span := startUsecaseSpan(ctx, "BookService.CreateBook")
	defer span.End()

	if p.UserID == "" {
		return book.Book{}, ErrNotAuthenticated
	}
	if !Allow(ActionCreateBook, book.RoleUnauthorized, AuthzContext{SiteAdmin: p.SiteAdmin}) {
		return book.Book{}, ErrNotAuthorized
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return book.Book{}, fmt.Errorf("%w: book name is required", ErrInvalidInput)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return book.Book{}, fmt.Errorf("generate book id: %w", err)
	}

	b := book.Book{ID: id, Name: name}
	if err := b.Validate(); err != nil {
		return book.Book{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.bookRepo.Create(ctx, b); err != nil {
		return book.Book{}, fmt.Errorf("create book: %w", err)
	}

	if err := s.userRepo.Upsert(ctx, user.User{ID: p.UserID, DisplayName: p.DisplayName}); err != nil {
		return book.Book{}, fmt.Errorf("upsert owner profile: %w", err)
	}
	owner := book.Subscription{BookID: b.ID, UserID: p.UserID, Role: book.RoleOwner}
	if err := s.bookRepo.UpsertSubscription(ctx, owner); err != nil {
		return book.Book{}, fmt.Errorf("create owner subscription: %w", err)
	}

	s.logger.InfoContext(ctx, "book created",
		"book_id", b.ID,
		"owner_id", p.UserID,
	)

	return b, nil
}

// ListMyBooks returns the books the caller belongs to.
func (s *BookService) ListMyBooks(ctx context.Context, p user.Principal) ([]book.Book, error) {
	ctx, span := startUsecaseSpan(ctx, "BookService.ListMyBooks")
	defer span.End()

	if p.UserID == "" {
		return nil, ErrNotAuthenticated
	}

	books, err := s.bookRepo.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	return books, nil
}

// ListMembers returns the book's members with profiles. Any member may look.
func (s *BookService) ListMembers(ctx context.Context, bookID string, p user.Principal) ([]Member, error) {
	ctx, span := startUsecaseSpan(ctx, "BookService.ListMembers")
	defer span.End()

	bookID = strings.TrimSpace(bookID)
	if _, err := s.gate.subscription(ctx, bookID, p); err != nil {
		return nil, err
	}

	subs, err := s.bookRepo.ListSubscriptions(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	ids := make([]string, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.UserID)
	}
	users, err := s.userRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	userByID := make(map[string]user.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	members := make([]Member, 0, len(subs))
	for _, sub := range subs {
		members = append(members, Member{Subscription: sub, User: userByID[sub.UserID]})
	}

	return members, nil
}

// AddMemberInput adds or re-adds a user to a book. Role cannot be Owner;
// ownership only moves through ChangeRole.
type AddMemberInput struct {
	UserID          string
	DisplayName     string
	Role            book.Role
	GuestChapterIDs []string
}

func (s *BookService) AddMember(ctx context.Context, bookID string, p user.Principal, input AddMemberInput) error {
	ctx, span := startUsecaseSpan(ctx, "BookService.AddMember")
	defer span.End()

	bookID = strings.TrimSpace(bookID)
	if _, err := s.gate.requireOwner(ctx, bookID, p); err != nil {
		return err
	}

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	switch input.Role {
	case book.RoleAdmin, book.RoleParticipant, book.RoleGuest, book.RoleUnauthorized:
	case book.RoleOwner:
		return fmt.Errorf("%w: ownership moves via role change", ErrInvalidInput)
	default:
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, input.Role)
	}

	existing, exists, err := s.bookRepo.GetSubscription(ctx, bookID, input.UserID)
	if err != nil {
		return fmt.Errorf("get subscription: %w", err)
	}
	if exists && existing.Role == book.RoleOwner {
		return fmt.Errorf("%w: cannot change the owner's role here", ErrInvalidInput)
	}

	if input.DisplayName != "" {
		if err := s.userRepo.Upsert(ctx, user.User{ID: input.UserID, DisplayName: input.DisplayName}); err != nil {
			return fmt.Errorf("upsert member profile: %w", err)
		}
	}

	sub := book.Subscription{
		BookID:          bookID,
		UserID:          input.UserID,
		Role:            input.Role,
		GuestChapterIDs: input.GuestChapterIDs,
	}
	if sub.Role != book.RoleGuest {
		sub.GuestChapterIDs = nil
	}
	if err := s.bookRepo.UpsertSubscription(ctx, sub); err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}

	s.logger.InfoContext(ctx, "member upserted",
		"book_id", bookID,
		"user_id", input.UserID,
		"role", string(input.Role),
	)

	return nil
}

// RemoveMember drops a user from a book. The Owner cannot be removed.
func (s *BookService) RemoveMember(ctx context.Context, bookID, userID string, p user.Principal) error {
	ctx, span := startUsecaseSpan(ctx, "BookService.RemoveMember")
	defer span.End()

	bookID = strings.TrimSpace(bookID)
	userID = strings.TrimSpace(userID)
	if _, err := s.gate.requireOwner(ctx, bookID, p); err != nil {
		return err
	}

	existing, exists, err := s.bookRepo.GetSubscription(ctx, bookID, userID)
	if err != nil {
		return fmt.Errorf("get subscription: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: member", ErrNotFound)
	}
	if existing.Role == book.RoleOwner {
		return fmt.Errorf("%w: the owner cannot be removed", ErrInvalidInput)
	}

	if err := s.bookRepo.DeleteSubscription(ctx, bookID, userID); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}

	s.logger.InfoContext(ctx, "member removed",
		"book_id", bookID,
		"user_id", userID,
	)

	return nil
}

// ChangeRole updates a member's role. Promoting to Owner transfers
// ownership: the current Owner becomes Admin in the same call.
func (s *BookService) ChangeRole(ctx context.Context, bookID, userID string, p user.Principal, role book.Role, guestChapterIDs []string) error {
	ctx, span := startUsecaseSpan(ctx, "BookService.ChangeRole")
	defer span.End()

	bookID = strings.TrimSpace(bookID)
	userID = strings.TrimSpace(userID)
	owner, err := s.gate.requireOwner(ctx, bookID, p)
	if err != nil {
		return err
	}

	target, exists, err := s.bookRepo.GetSubscription(ctx, bookID, userID)
	if err != nil {
		return fmt.Errorf("get subscription: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: member", ErrNotFound)
	}

	if role == book.RoleOwner {
		if target.UserID == owner.UserID {
			return nil
		}
		demoted := owner
		demoted.Role = book.RoleAdmin
		if err := s.bookRepo.UpsertSubscription(ctx, demoted); err != nil {
			return fmt.Errorf("demote previous owner: %w", err)
		}
		target.Role = book.RoleOwner
		target.GuestChapterIDs = nil
		if err := s.bookRepo.UpsertSubscription(ctx, target); err != nil {
			return fmt.Errorf("promote new owner: %w", err)
		}
		s.logger.InfoContext(ctx, "ownership transferred",
			"book_id", bookID,
			"from", owner.UserID,
			"to", userID,
		)
		return nil
	}

	if target.UserID == owner.UserID {
		return fmt.Errorf("%w: the owner must transfer ownership first", ErrInvalidInput)
	}
	if _, err := book.ParseRole(string(role)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	target.Role = role
	target.GuestChapterIDs = guestChapterIDs
	if role != book.RoleGuest {
		target.GuestChapterIDs = nil
	}
	if err := s.bookRepo.UpsertSubscription(ctx, target); err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}

	s.logger.InfoContext(ctx, "role changed",
		"book_id", bookID,
		"user_id", userID,
		"role", string(role),
	)

	return nil
}
