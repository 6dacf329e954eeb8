package chapter

import (
	"fmt"
	"strings"
)

// Chapter groups the events of one round of play. IsOpen gates pick
// submission; IsVisible gates member visibility (admins always see it).
// Chapters start closed and hidden.
type Chapter struct {
	ID        string
	BookID    string
	Title     string
	IsOpen    bool
	IsVisible bool
}

func (c Chapter) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("chapter id is required")
	}
	if c.BookID == "" {
		return fmt.Errorf("chapter book id is required")
	}
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("chapter title is required")
	}

	return nil
}
