package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oksasatya/go-ddd-credentials/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-credentials/internal/domain/repository"
	"github.com/oksasatya/go-ddd-credentials/internal/domain/service"
)

// Service implements registration, authentication, password change and
// profile lookup on top of an identity store and a password encoder.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	Repo    repo.IdentityRepository
	Encoder service.PasswordEncoder
	// Attempts enables lockout when set. Nil keeps authentication free of
	// side effects.
	Attempts repo.AttemptCounter
	Now      func() time.Time
}

func NewService(identities repo.IdentityRepository, encoder service.PasswordEncoder, attempts repo.AttemptCounter) *Service {
	return &Service{
		Repo:     identities,
		Encoder:  encoder,
		Attempts: attempts,
		Now:      time.Now,
	}
}

// Register validates every field, encodes the password and stores a new identity.
func (s *Service) Register(ctx context.Context, loginID, name, rawPassword string, birthday time.Time, email string) error {
	identifier, err := entity.NewIdentifier(loginID)
	if err != nil {
		return err
	}
	displayName, err := entity.NewDisplayName(name)
	if err != nil {
		return err
	}
	birthDate, err := entity.NewBirthDate(birthday)
	if err != nil {
		return err
	}
	address, err := entity.NewEmailAddress(email)
	if err != nil {
		return err
	}
	password, err := entity.NewPlaintextPassword(rawPassword, birthDate)
	if err != nil {
		return err
	}

	digest, err := s.Encoder.Encode(password.Value())
	if err != nil {
		return fmt.Errorf("encode password: %w", err)
	}

	u := entity.RegisterIdentity(identifier, displayName, digest, birthDate, address, s.now())
	if _, err := s.Repo.Save(ctx, u); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return ErrDuplicateIdentity
		}
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Authenticate checks rawPassword against the stored digest. Unknown ids and
// wrong passwords both return ErrAuthenticationFailed. With lockout enabled
// both kinds of failure are counted, so a locked id reveals nothing about
// whether it exists.
func (s *Service) Authenticate(ctx context.Context, identifier entity.Identifier, rawPassword string) error {
	if s.Attempts != nil {
		count, err := s.Attempts.Current(ctx, identifier)
		if err != nil {
			return fmt.Errorf("read failed attempts: %w", err)
		}
		if count.IsLocked() {
			return ErrAccountLocked
		}
	}

	u, err := s.Repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return s.authenticationFailed(ctx, identifier)
		}
		return fmt.Errorf("find user: %w", err)
	}

	if !s.Encoder.Matches(rawPassword, u.PasswordDigest()) {
		return s.authenticationFailed(ctx, identifier)
	}

	if s.Attempts != nil {
		if err := s.Attempts.Reset(ctx, identifier); err != nil {
			return fmt.Errorf("reset failed attempts: %w", err)
		}
	}
	return nil
}

func (s *Service) authenticationFailed(ctx context.Context, identifier entity.Identifier) error {
	if s.Attempts != nil {
		if _, err := s.Attempts.Increment(ctx, identifier); err != nil {
			return fmt.Errorf("record failed attempt: %w", err)
		}
	}
	return ErrAuthenticationFailed
}

// UpdatePassword replaces the password after checking the current one.
// Both passwords are validated against the stored birthday.
func (s *Service) UpdatePassword(ctx context.Context, identifier entity.Identifier, currentRawPassword, newRawPassword string) error {
	u, err := s.findUser(ctx, identifier)
	if err != nil {
		return err
	}

	current, err := entity.NewPlaintextPassword(currentRawPassword, u.BirthDate())
	if err != nil {
		return err
	}
	next, err := entity.NewPlaintextPassword(newRawPassword, u.BirthDate())
	if err != nil {
		return err
	}

	if !s.Encoder.Matches(current.Value(), u.PasswordDigest()) {
		return ErrCurrentPasswordMismatch
	}
	if s.Encoder.Matches(next.Value(), u.PasswordDigest()) {
		return ErrPasswordUnchanged
	}

	digest, err := s.Encoder.Encode(next.Value())
	if err != nil {
		return fmt.Errorf("encode password: %w", err)
	}
	if _, err := s.Repo.Save(ctx, u.ChangePassword(digest)); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrIdentityNotFound
		}
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// QueryProfile returns the profile of identifier with the name masked.
func (s *Service) QueryProfile(ctx context.Context, identifier entity.Identifier) (*ProfileView, error) {
	u, err := s.findUser(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return &ProfileView{
		LoginID:    u.Identifier().String(),
		MaskedName: MaskName(u.Name().String()),
		BirthDate:  u.BirthDate(),
		Email:      u.Email().String(),
	}, nil
}

func (s *Service) findUser(ctx context.Context, identifier entity.Identifier) (*entity.Identity, error) {
	u, err := s.Repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
