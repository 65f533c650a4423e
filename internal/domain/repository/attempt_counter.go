package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-credentials/internal/domain/entity"
)

// AttemptCounter tracks failed password attempts per identifier.
type AttemptCounter interface {
	Current(ctx context.Context, identifier entity.Identifier) (entity.FailedAttemptCount, error)
	Increment(ctx context.Context, identifier entity.Identifier) (entity.FailedAttemptCount, error)
	Reset(ctx context.Context, identifier entity.Identifier) error
}
