package application

import "errors"

var (
	ErrDuplicateIdentity       = errors.New("login id is already in use")
	ErrAuthenticationFailed    = errors.New("invalid login id or password")
	ErrIdentityNotFound        = errors.New("user not found")
	ErrCurrentPasswordMismatch = errors.New("current password does not match")
	ErrPasswordUnchanged       = errors.New("new password must differ from the current password")
	ErrAccountLocked           = errors.New("account is locked after too many failed attempts")
)
