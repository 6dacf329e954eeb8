package book

import (
	"fmt"
	"strings"
)

// Role is a member's authority on one book. Guests additionally carry the
// set of chapters they were granted.
type Role string

const (
	RoleOwner        Role = "owner"
	RoleAdmin        Role = "admin"
	RoleParticipant  Role = "participant"
	RoleGuest        Role = "guest"
	RoleUnauthorized Role = "unauthorized"
)

func ParseRole(v string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(v))) {
	case RoleOwner:
		return RoleOwner, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleParticipant:
		return RoleParticipant, nil
	case RoleGuest:
		return RoleGuest, nil
	case RoleUnauthorized:
		return RoleUnauthorized, nil
	default:
		return "", fmt.Errorf("unknown role %q", v)
	}
}

// Book is one pool: a container of chapters and members.
type Book struct {
	ID   string
	Name string
}

func (b Book) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("book id is required")
	}
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("book name is required")
	}

	return nil
}

// Subscription ties a user to a book with a role. GuestChapterIDs is only
// meaningful for Guests.
type Subscription struct {
	BookID          string
	UserID          string
	Role            Role
	GuestChapterIDs []string
}

// IsAdmin reports whether the subscription can manage chapters and answers.
func (s Subscription) IsAdmin() bool {
	return s.Role == RoleOwner || s.Role == RoleAdmin
}

// CanViewChapter applies the visibility rules: admins see everything,
// participants see visible chapters, guests see visible granted chapters.
func (s Subscription) CanViewChapter(chapterID string, visible bool) bool {
	switch s.Role {
	case RoleOwner, RoleAdmin:
		return true
	case RoleParticipant:
		return visible
	case RoleGuest:
		if !visible {
			return false
		}
		for _, id := range s.GuestChapterIDs {
			if id == chapterID {
				return true
			}
		}
		return false
	default:
		return false
	}
}
