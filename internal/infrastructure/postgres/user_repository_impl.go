package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ddd-credentials/internal/domain/entity"
	"github.com/oksasatya/go-ddd-credentials/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Save inserts new identities and rewrites the password digest of persisted ones.
// The unique constraint on login_id turns concurrent duplicate inserts into ErrConflict.
func (r *UserRepository) Save(ctx context.Context, u *entity.Identity) (*entity.Identity, error) {
	if id, ok := u.ID(); ok {
		return r.update(ctx, id, u)
	}

	var (
		id        int64
		createdAt time.Time
	)
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (login_id, name, password_digest, birthday, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, u.Identifier().String(), u.Name().String(), u.PasswordDigest(), u.BirthDate().Time(), u.Email().String(), u.CreatedAt())

	if err := row.Scan(&id, &createdAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("insert user %s: %w", u.Identifier(), repository.ErrConflict)
		}
		return nil, fmt.Errorf("insert user %s: %w", u.Identifier(), err)
	}

	return entity.ReconstituteIdentity(id, u.Identifier(), u.Name(), u.PasswordDigest(), u.BirthDate(), u.Email(), u.FailedAttempts(), createdAt), nil
}

func (r *UserRepository) update(ctx context.Context, id int64, u *entity.Identity) (*entity.Identity, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_digest = $1, updated_at = $2
		WHERE id = $3
	`, u.PasswordDigest(), time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}

	if res.RowsAffected() == 0 {
		return nil, repository.ErrNotFound
	}

	return u, nil
}

func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier entity.Identifier) (*entity.Identity, error) {
	var (
		id        int64
		loginID   string
		name      string
		digest    string
		birthday  time.Time
		email     string
		createdAt time.Time
	)

	row := r.pool.QueryRow(ctx, `
		SELECT id, login_id, name, password_digest, birthday, email, created_at
		FROM users
		WHERE login_id = $1
	`, identifier.String())

	if err := row.Scan(&id, &loginID, &name, &digest, &birthday, &email, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select user %s: %w", identifier, err)
	}

	return reconstitute(id, loginID, name, digest, birthday, email, createdAt)
}

func (r *UserRepository) ExistsByIdentifier(ctx context.Context, identifier entity.Identifier) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE login_id = $1)`, identifier.String()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user %s: %w", identifier, err)
	}
	return exists, nil
}

// reconstitute runs stored columns back through the value object constructors
// so rows that no longer satisfy the rules are reported instead of loaded.
func reconstitute(id int64, loginID, name, digest string, birthday time.Time, email string, createdAt time.Time) (*entity.Identity, error) {
	identifier, err := entity.NewIdentifier(loginID)
	if err != nil {
		return nil, fmt.Errorf("stored user %d: %v", id, err)
	}
	displayName, err := entity.NewDisplayName(name)
	if err != nil {
		return nil, fmt.Errorf("stored user %d: %v", id, err)
	}
	birthDate, err := entity.NewBirthDate(birthday)
	if err != nil {
		return nil, fmt.Errorf("stored user %d: %v", id, err)
	}
	address, err := entity.NewEmailAddress(email)
	if err != nil {
		return nil, fmt.Errorf("stored user %d: %v", id, err)
	}
	return entity.ReconstituteIdentity(id, identifier, displayName, digest, birthDate, address, entity.InitialFailedAttemptCount(), createdAt), nil
}

var _ repository.IdentityRepository = (*UserRepository)(nil)
