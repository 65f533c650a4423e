package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-ddd-credentials/internal/domain/entity"
)

// Store facts returned (optionally wrapped) by repository implementations.
// The application layer translates them into its own errors.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// IdentityRepository defines the persistence operations for identities.
type IdentityRepository interface {
	// Save inserts an identity without an id or replaces the stored one with
	// the same id. Inserting an identifier that already exists returns
	// ErrConflict; the uniqueness check must be atomic.
	Save(ctx context.Context, identity *entity.Identity) (*entity.Identity, error)
	// FindByIdentifier returns ErrNotFound when no identity matches.
	FindByIdentifier(ctx context.Context, identifier entity.Identifier) (*entity.Identity, error)
	ExistsByIdentifier(ctx context.Context, identifier entity.Identifier) (bool, error)
}
