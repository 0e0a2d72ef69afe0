package invites

import (
	"errors"
	"math/rand"
	"strings"
)

const (
	slugChars      = "abcdefghijklmnopqrstuvwxyz0123456789"
	slugLength     = 8
	slugMaxRetries = 5
)

// ErrSlugExhausted means the generator could not find a free slug within its
// retry budget. Surfaced as a server error, never retried automatically.
var ErrSlugExhausted = errors.New("failed to generate unique slug")

// Slugs live in URL paths the router also serves, so these are off limits.
var reservedSlugs = []string{"api", "admin", "auth", "invite", "health"}

type SlugAvailabilityChecker interface {
	ExistsBySlug(slug string) (bool, error)
}

// GenerateSlug mints a URL-safe slug that is unique across every profile ever
// created, soft-deleted ones included. Each candidate is re-checked against
// the store before being handed out.
func GenerateSlug(checker SlugAvailabilityChecker) (string, error) {
	for i := 0; i < slugMaxRetries; i++ {
		slug := randomSlug(slugLength)
		if isReservedSlug(slug) {
			continue
		}

		exists, err := checker.ExistsBySlug(slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
	}

	// If collisions persist, try once more with +1 length
	slug := randomSlug(slugLength + 1)
	exists, err := checker.ExistsBySlug(slug)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrSlugExhausted
	}

	return slug, nil
}

func randomSlug(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = slugChars[rand.Intn(len(slugChars))]
	}
	return string(b)
}

func isReservedSlug(slug string) bool {
	for _, r := range reservedSlugs {
		if strings.EqualFold(slug, r) {
			return true
		}
	}
	return false
}
