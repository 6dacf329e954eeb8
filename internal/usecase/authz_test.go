package usecase

import (
	"testing"

	"github.com/pickemhq/pickem/internal/domain/book"
)

func TestAllow(t *testing.T) {
	cases := []struct {
		name   string
		action Action
		role   book.Role
		actx   AuthzContext
		want   bool
	}{
		{"site admin creates books", ActionCreateBook, book.RoleUnauthorized, AuthzContext{SiteAdmin: true}, true},
		{"owner cannot create books without site admin", ActionCreateBook, book.RoleOwner, AuthzContext{}, false},
		{"owner manages chapters", ActionManageChapter, book.RoleOwner, AuthzContext{}, true},
		{"admin manages chapters", ActionManageChapter, book.RoleAdmin, AuthzContext{}, true},
		{"participant cannot manage chapters", ActionManageChapter, book.RoleParticipant, AuthzContext{}, false},
		{"only owner manages members", ActionManageMembers, book.RoleAdmin, AuthzContext{}, false},
		{"owner manages members", ActionManageMembers, book.RoleOwner, AuthzContext{}, true},
		{"admin views hidden chapter", ActionViewChapter, book.RoleAdmin, AuthzContext{ChapterID: "ch-1"}, true},
		{"participant needs visibility", ActionViewChapter, book.RoleParticipant, AuthzContext{ChapterID: "ch-1"}, false},
		{"participant views visible chapter", ActionViewChapter, book.RoleParticipant, AuthzContext{ChapterID: "ch-1", ChapterVisible: true}, true},
		{"guest needs a grant", ActionViewChapter, book.RoleGuest, AuthzContext{ChapterID: "ch-11", ChapterVisible: true, GuestChapterIDs: []string{"ch-10"}}, false},
		{"guest views granted chapter", ActionViewChapter, book.RoleGuest, AuthzContext{ChapterID: "ch-10", ChapterVisible: true, GuestChapterIDs: []string{"ch-10"}}, true},
		{"guest grant needs visibility", ActionViewChapter, book.RoleGuest, AuthzContext{ChapterID: "ch-10", GuestChapterIDs: []string{"ch-10"}}, false},
		{"submit follows view", ActionSubmitPicks, book.RoleGuest, AuthzContext{ChapterID: "ch-10", ChapterVisible: true, GuestChapterIDs: []string{"ch-10"}}, true},
		{"unauthorized sees nothing", ActionViewChapter, book.RoleUnauthorized, AuthzContext{ChapterID: "ch-1", ChapterVisible: true}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Allow(tc.action, tc.role, tc.actx); got != tc.want {
				t.Fatalf("Allow(%s, %s) = %t, want %t", tc.action, tc.role, got, tc.want)
			}
		})
	}
}
