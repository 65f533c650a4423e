package entity

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// EmailAddress is a trimmed, format-checked email address.
type EmailAddress struct {
	value string
}

func NewEmailAddress(raw string) (EmailAddress, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return EmailAddress{}, invalid("email", "email is required")
	}
	if !emailPattern.MatchString(trimmed) {
		return EmailAddress{}, invalid("email", "email format is invalid")
	}
	return EmailAddress{value: trimmed}, nil
}

func (e EmailAddress) String() string { return e.value }
