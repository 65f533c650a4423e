package entity

import (
	"time"
)

// Identity is the aggregate root for the credential domain.
// It is immutable: ChangePassword returns a new value.
//
// The password is held only as an encoded digest produced by a
// service.PasswordEncoder; it is never validated or built by hand here.
type Identity struct {
	id             int64
	persisted      bool
	identifier     Identifier
	name           DisplayName
	passwordDigest string
	birthDate      BirthDate
	email          EmailAddress
	failedAttempts FailedAttemptCount
	createdAt      time.Time
}

// RegisterIdentity creates a new, not yet persisted identity.
func RegisterIdentity(identifier Identifier, name DisplayName, passwordDigest string, birthDate BirthDate, email EmailAddress, createdAt time.Time) *Identity {
	return &Identity{
		identifier:     identifier,
		name:           name,
		passwordDigest: passwordDigest,
		birthDate:      birthDate,
		email:          email,
		failedAttempts: InitialFailedAttemptCount(),
		createdAt:      createdAt,
	}
}

// ReconstituteIdentity rebuilds an identity loaded from storage.
func ReconstituteIdentity(id int64, identifier Identifier, name DisplayName, passwordDigest string, birthDate BirthDate, email EmailAddress, failedAttempts FailedAttemptCount, createdAt time.Time) *Identity {
	return &Identity{
		id:             id,
		persisted:      true,
		identifier:     identifier,
		name:           name,
		passwordDigest: passwordDigest,
		birthDate:      birthDate,
		email:          email,
		failedAttempts: failedAttempts,
		createdAt:      createdAt,
	}
}

// ChangePassword returns a copy of the identity with the digest replaced.
func (u *Identity) ChangePassword(passwordDigest string) *Identity {
	changed := *u
	changed.passwordDigest = passwordDigest
	return &changed
}

// ID returns the store-assigned id; ok is false until the identity is persisted.
func (u *Identity) ID() (id int64, ok bool) { return u.id, u.persisted }

func (u *Identity) Identifier() Identifier { return u.identifier }
func (u *Identity) Name() DisplayName { return u.name }
func (u *Identity) PasswordDigest() string { return u.passwordDigest }
func (u *Identity) BirthDate() BirthDate { return u.birthDate }
func (u *Identity) Email() EmailAddress { return u.email }
func (u *Identity) FailedAttempts() FailedAttemptCount { return u.failedAttempts }
func (u *Identity) CreatedAt() time.Time { return u.createdAt }
