//go:build integration

package postgres

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/oksasatya/go-ddd-credentials/internal/domain/entity"
	"github.com/oksasatya/go-ddd-credentials/internal/domain/repository"
)

type UserRepositorySuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	repo      *UserRepository
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

func (s *UserRepositorySuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("appdb"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	s.Require().NoError(RunMigrations(dsn, "../../../db/migrations", logger))

	pool, err := NewPool(ctx, PoolConfig{DSN: dsn, MaxConns: 4, MinConns: 1, MaxConnLife: time.Hour})
	s.Require().NoError(err)
	s.pool = pool
	s.repo = NewUserRepository(pool)
}

func (s *UserRepositorySuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *UserRepositorySuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), `TRUNCATE users RESTART IDENTITY`)
	s.Require().NoError(err)
}

func (s *UserRepositorySuite) newIdentity(loginID string) *entity.Identity {
	id, err := entity.NewIdentifier(loginID)
	s.Require().NoError(err)
	name, err := entity.NewDisplayName("홍길동")
	s.Require().NoError(err)
	email, err := entity.NewEmailAddress("test@example.com")
	s.Require().NoError(err)
	birthday, err := entity.NewBirthDate(time.Date(1990, time.May, 15, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	return entity.RegisterIdentity(id, name, "salt:hash", birthday, email, time.Now().UTC().Truncate(time.Microsecond))
}

func (s *UserRepositorySuite) TestSaveAndFind() {
	ctx := context.Background()

	saved, err := s.repo.Save(ctx, s.newIdentity("test1234"))
	s.Require().NoError(err)
	id, ok := saved.ID()
	s.True(ok)
	s.Positive(id)

	found, err := s.repo.FindByIdentifier(ctx, saved.Identifier())
	s.Require().NoError(err)
	s.Equal("test1234", found.Identifier().String())
	s.Equal("홍길동", found.Name().String())
	s.Equal("salt:hash", found.PasswordDigest())
	s.Equal("1990-05-15", found.BirthDate().String())
	s.Equal("test@example.com", found.Email().String())

	exists, err := s.repo.ExistsByIdentifier(ctx, saved.Identifier())
	s.Require().NoError(err)
	s.True(exists)
}

func (s *UserRepositorySuite) TestDuplicateIdentifierConflicts() {
	ctx := context.Background()

	_, err := s.repo.Save(ctx, s.newIdentity("test1234"))
	s.Require().NoError(err)

	_, err = s.repo.Save(ctx, s.newIdentity("test1234"))
	s.Require().ErrorIs(err, repository.ErrConflict)
}

func (s *UserRepositorySuite) TestConcurrentDuplicateInsertsOnlyOneWins() {
	ctx := context.Background()
	candidates := []*entity.Identity{s.newIdentity("race1234"), s.newIdentity("race1234"), s.newIdentity("race1234")}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, u := range candidates {
		wg.Add(1)
		go func(u *entity.Identity) {
			defer wg.Done()
			_, err := s.repo.Save(ctx, u)
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}(u)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case s.ErrorIs(err, repository.ErrConflict):
			conflicts++
		}
	}
	s.Equal(1, ok)
	s.Equal(len(candidates)-1, conflicts)
}

func (s *UserRepositorySuite) TestSaveUpdatesDigest() {
	ctx := context.Background()

	saved, err := s.repo.Save(ctx, s.newIdentity("test1234"))
	s.Require().NoError(err)

	_, err = s.repo.Save(ctx, saved.ChangePassword("new:digest"))
	s.Require().NoError(err)

	found, err := s.repo.FindByIdentifier(ctx, saved.Identifier())
	s.Require().NoError(err)
	s.Equal("new:digest", found.PasswordDigest())
}

func (s *UserRepositorySuite) TestFindMissing() {
	id, err := entity.NewIdentifier("missing1")
	s.Require().NoError(err)

	_, err = s.repo.FindByIdentifier(context.Background(), id)
	s.Require().ErrorIs(err, repository.ErrNotFound)

	exists, err := s.repo.ExistsByIdentifier(context.Background(), id)
	s.Require().NoError(err)
	s.False(exists)
}
