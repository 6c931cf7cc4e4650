// Package slug normalizes store names into registry keys and proposes
// alternatives when a name is taken.
package slug

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
)

// MinLength is the shortest slug accepted by the registry.
const MinLength = 3

const maxSuggestions = 3

var (
	ErrTooShort = errors.New("SLUG_TOO_SHORT")

	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
)

// Normalize lowercases name, collapses every run of characters outside
// [a-z0-9] to a single hyphen and trims hyphens from both ends.
func Normalize(name string) string {
	s := nonAlnum.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

func Validate(s string) error {
	if len(s) < MinLength {
		return fmt.Errorf("%w: %q", ErrTooShort, s)
	}
	return nil
}

// AvailabilityChecker reports whether a slug is free in the registry.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, slug string) (bool, error)
}

type Suggester struct {
	checker AvailabilityChecker
	randInt func(n int) int
	now     func() time.Time
}

func NewSuggester(checker AvailabilityChecker) *Suggester {
	return &Suggester{checker: checker, randInt: rand.IntN, now: time.Now}
}

// Candidates lists the suffixed variants tried for base, in order.
func (s *Suggester) Candidates(base string) []string {
	suffixes := []string{
		fmt.Sprintf("%d", s.randInt(1000)),
		"shop",
		"store",
		"co",
		"market",
		fmt.Sprintf("%d", s.now().UnixMilli()%10000),
	}
	out := make([]string, 0, len(suffixes))
	for _, suffix := range suffixes {
		out = append(out, base+"-"+suffix)
	}
	return out
}

// Suggest returns up to three available candidates. A failed availability
// check counts as unavailable; only context cancellation is returned.
func (s *Suggester) Suggest(ctx context.Context, base string) ([]string, error) {
	suggestions := make([]string, 0, maxSuggestions)
	for _, candidate := range s.Candidates(base) {
		if err := ctx.Err(); err != nil {
			return suggestions, err
		}
		ok, err := s.checker.IsAvailable(ctx, candidate)
		if err != nil || !ok {
			continue
		}
		suggestions = append(suggestions, candidate)
		if len(suggestions) >= maxSuggestions {
			break
		}
	}
	return suggestions, nil
}
