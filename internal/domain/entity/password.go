package entity

import (
	"regexp"
	"strings"
)

// 8-16 characters of letters, digits and the symbols !@#$%^&*()_+-=[]{};':"\|,.<>/?`~
var passwordPattern = regexp.MustCompile("^[a-zA-Z0-9!@#$%^&*()_+\\-=\\[\\]{};':\"\\\\|,.<>/?`~]{8,16}$")

// forbiddenBirthDateLayouts are the renderings of the birth date a password
// must not contain.
var forbiddenBirthDateLayouts = []string{
	"20060102",
	"060102",
	"0102",
	"2006-01-02",
	"06-01-02",
}

// PlaintextPassword is a raw password that passed the format and birth date
// rules. It is never trimmed.
type PlaintextPassword struct {
	value string
}

// NewPlaintextPassword validates raw in the context of the owner's birth date.
func NewPlaintextPassword(raw string, birthDate BirthDate) (PlaintextPassword, error) {
	if strings.TrimSpace(raw) == "" {
		return PlaintextPassword{}, invalid("password", "password is required")
	}
	if !passwordPattern.MatchString(raw) {
		return PlaintextPassword{}, invalid("password", "password must be 8-16 letters, digits or symbols")
	}
	if ContainsBirthDate(raw, birthDate) {
		return PlaintextPassword{}, invalid("password", "password must not contain the birthday")
	}
	return PlaintextPassword{value: raw}, nil
}

// ContainsBirthDate reports whether raw contains the birth date rendered as
// yyyyMMdd, yyMMdd, MMdd, yyyy-MM-dd or yy-MM-dd.
func ContainsBirthDate(raw string, birthDate BirthDate) bool {
	if birthDate.value.IsZero() {
		return false
	}
	for _, layout := range forbiddenBirthDateLayouts {
		if strings.Contains(raw, birthDate.Format(layout)) {
			return true
		}
	}
	return false
}

func (p PlaintextPassword) Value() string { return p.value }

// String keeps the raw value out of logs and fmt output.
func (p PlaintextPassword) String() string { return "********" }
