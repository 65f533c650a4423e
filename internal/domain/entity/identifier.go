package entity

import (
	"regexp"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[a-z0-9]{4,10}$`)

// Identifier is the login id of an identity. It is unique across the store.
type Identifier struct {
	value string
}

// NewIdentifier trims raw and checks it is 4-10 lowercase letters or digits.
func NewIdentifier(raw string) (Identifier, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Identifier{}, invalid("loginId", "login id is required")
	}
	if !identifierPattern.MatchString(trimmed) {
		return Identifier{}, invalid("loginId", "login id must be 4-10 lowercase letters or digits")
	}
	return Identifier{value: trimmed}, nil
}

func (i Identifier) String() string { return i.value }
