package application

import "github.com/oksasatya/go-ddd-credentials/internal/domain/entity"

const maskRune = '*'

// ProfileView is the read model returned by QueryProfile.
type ProfileView struct {
	LoginID    string
	MaskedName string
	BirthDate  entity.BirthDate
	Email      string
}

// MaskName replaces the last character of name with '*'. It counts runes, not bytes.
func MaskName(name string) string {
	runes := []rune(name)
	switch len(runes) {
	case 0:
		return name
	case 1:
		return string(maskRune)
	}
	runes[len(runes)-1] = maskRune
	return string(runes)
}
