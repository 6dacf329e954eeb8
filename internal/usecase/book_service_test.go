package usecase

import (
	"errors"
	"testing"

	"github.com/pickemhq/pickem/internal/domain/book"
	"github.com/pickemhq/pickem/internal/domain/user"
	"github.com/pickemhq/pickem/internal/infrastructure/repository/memory"
)

func newBookService(r repos) *BookService {
	return NewBookService(r.books, r.users, &staticIDGenerator{prefix: "bk"}, nopLogger())
}

func TestBookService_CreateBook(t *testing.T) {
	r := newSeededRepos(t)
	service := newBookService(r)
	ctx := t.Context()

	t.Run("site admin creates and owns", func(t *testing.T) {
		admin := user.Principal{UserID: "u-site", DisplayName: "Site Admin", SiteAdmin: true}
		b, err := service.CreateBook(ctx, admin, "Playoff Pool")
		if err != nil {
			t.Fatalf("create book: %v", err)
		}

		sub, exists, err := r.books.GetSubscription(ctx, b.ID, "u-site")
		if err != nil || !exists {
			t.Fatalf("owner subscription missing: exists=%t err=%v", exists, err)
		}
		if sub.Role != book.RoleOwner {
			t.Fatalf("creator role = %s, want owner", sub.Role)
		}
	})

	t.Run("regular user refused", func(t *testing.T) {
		_, err := service.CreateBook(ctx, principal("u-alice"), "Rogue Pool")
		if !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})
}

func TestBookService_AddMember(t *testing.T) {
	r := newSeededRepos(t)
	service := newBookService(r)
	ctx := t.Context()
	owner := principal(memory.SeedOwnerID)

	t.Run("owner adds participant", func(t *testing.T) {
		err := service.AddMember(ctx, memory.SeedBookID, owner, AddMemberInput{
			UserID:      "u-carol",
			DisplayName: "Carol",
			Role:        book.RoleParticipant,
		})
		if err != nil {
			t.Fatalf("add member: %v", err)
		}
	})

	t.Run("cannot add a second owner", func(t *testing.T) {
		err := service.AddMember(ctx, memory.SeedBookID, owner, AddMemberInput{
			UserID: "u-carol",
			Role:   book.RoleOwner,
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("non-owner refused", func(t *testing.T) {
		err := service.AddMember(ctx, memory.SeedBookID, principal("u-alice"), AddMemberInput{
			UserID: "u-dave",
			Role:   book.RoleParticipant,
		})
		if !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})
}

func TestBookService_RemoveMember(t *testing.T) {
	r := newSeededRepos(t)
	service := newBookService(r)
	ctx := t.Context()
	owner := principal(memory.SeedOwnerID)

	if err := service.RemoveMember(ctx, memory.SeedBookID, "u-bob", owner); err != nil {
		t.Fatalf("remove member: %v", err)
	}
	if _, exists, _ := r.books.GetSubscription(ctx, memory.SeedBookID, "u-bob"); exists {
		t.Fatal("member still subscribed after removal")
	}

	err := service.RemoveMember(ctx, memory.SeedBookID, memory.SeedOwnerID, owner)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput removing the owner, got %v", err)
	}
}

func TestBookService_ChangeRole_TransfersOwnership(t *testing.T) {
	r := newSeededRepos(t)
	service := newBookService(r)
	ctx := t.Context()
	owner := principal(memory.SeedOwnerID)

	if err := service.ChangeRole(ctx, memory.SeedBookID, "u-alice", owner, book.RoleOwner, nil); err != nil {
		t.Fatalf("transfer ownership: %v", err)
	}

	subs, err := r.books.ListSubscriptions(ctx, memory.SeedBookID)
	if err != nil {
		t.Fatalf("list subscriptions: %v", err)
	}
	owners := 0
	for _, sub := range subs {
		if sub.Role == book.RoleOwner {
			owners++
			if sub.UserID != "u-alice" {
				t.Fatalf("owner is %s, want u-alice", sub.UserID)
			}
		}
		if sub.UserID == memory.SeedOwnerID && sub.Role != book.RoleAdmin {
			t.Fatalf("previous owner role = %s, want admin", sub.Role)
		}
	}
	if owners != 1 {
		t.Fatalf("book has %d owners, want exactly 1", owners)
	}
}

func TestBookService_ChangeRole_OwnerCannotDemoteSelf(t *testing.T) {
	r := newSeededRepos(t)
	service := newBookService(r)

	err := service.ChangeRole(t.Context(), memory.SeedBookID, memory.SeedOwnerID, principal(memory.SeedOwnerID), book.RoleParticipant, nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
