package entity

import (
	"regexp"
	"strings"
)

var displayNamePattern = regexp.MustCompile(`^[A-Za-z0-9가-힣]{2,20}$`)

// DisplayName is the human readable name of an identity.
type DisplayName struct {
	value string
}

// NewDisplayName accepts 2-20 characters made of latin letters, digits or
// Hangul syllables after trimming.
func NewDisplayName(raw string) (DisplayName, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DisplayName{}, invalid("name", "name is required")
	}
	if !displayNamePattern.MatchString(trimmed) {
		return DisplayName{}, invalid("name", "name must be 2-20 letters, digits or Hangul characters")
	}
	return DisplayName{value: trimmed}, nil
}

func (n DisplayName) String() string { return n.value }
