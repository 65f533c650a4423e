// Package memory provides in-process implementations of the domain
// repositories for tests and local development.
package memory

import (
	"context"
	"sync"

	"github.com/oksasatya/go-ddd-credentials/internal/domain/entity"
	"github.com/oksasatya/go-ddd-credentials/internal/domain/repository"
)

type UserRepository struct {
	mu           sync.RWMutex
	nextID       int64
	byIdentifier map[string]*entity.Identity
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byIdentifier: make(map[string]*entity.Identity)}
}

func (r *UserRepository) Save(_ context.Context, u *entity.Identity) (*entity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := u.Identifier().String()
	if id, ok := u.ID(); ok {
		current, exists := r.byIdentifier[key]
		if !exists {
			return nil, repository.ErrNotFound
		}
		if currentID, _ := current.ID(); currentID != id {
			return nil, repository.ErrConflict
		}
		r.byIdentifier[key] = u
		return u, nil
	}

	if _, exists := r.byIdentifier[key]; exists {
		return nil, repository.ErrConflict
	}
	r.nextID++
	saved := entity.ReconstituteIdentity(r.nextID, u.Identifier(), u.Name(), u.PasswordDigest(), u.BirthDate(), u.Email(), u.FailedAttempts(), u.CreatedAt())
	r.byIdentifier[key] = saved
	return saved, nil
}

func (r *UserRepository) FindByIdentifier(_ context.Context, identifier entity.Identifier) (*entity.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byIdentifier[identifier.String()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) ExistsByIdentifier(_ context.Context, identifier entity.Identifier) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byIdentifier[identifier.String()]
	return ok, nil
}

var _ repository.IdentityRepository = (*UserRepository)(nil)
