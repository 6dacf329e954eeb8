package pick

import (
	"errors"
	"fmt"
)

var (
	// ErrBadWagerPermutation flags spread wagers that are not a permutation
	// of 1..N for a group of N spreads.
	ErrBadWagerPermutation = errors.New("wagers must be a permutation of 1..N")

	// ErrBadPayload flags a submission entry that is structurally wrong for
	// its event: bad shape, empty or oversized answer, non-integer points.
	ErrBadPayload = errors.New("bad pick payload")
)

// MaxAnswerLength bounds a user-input answer after trimming, in bytes.
const MaxAnswerLength = 1024

// ValidateWagers checks that wagers form a permutation of 1..len(wagers).
func ValidateWagers(wagers []int) error {
	n := len(wagers)
	seen := make(map[int]int, n)
	for _, w := range wagers {
		if w < 1 || w > n {
			return fmt.Errorf("%w: wager %d out of range for %d spreads", ErrBadWagerPermutation, w, n)
		}
		seen[w]++
		if seen[w] > 1 {
			return fmt.Errorf("%w: wager %d repeated", ErrBadWagerPermutation, w)
		}
	}
	return nil
}
