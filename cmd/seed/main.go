package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-credentials/config"
	userapp "github.com/oksasatya/go-ddd-credentials/internal/application"
	"github.com/oksasatya/go-ddd-credentials/internal/domain/entity"
	pginfra "github.com/oksasatya/go-ddd-credentials/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-credentials/internal/infrastructure/security"
	"github.com/oksasatya/go-ddd-credentials/pkg/helpers"
)

func main() {
	_ = godotenv.Load()

	loginID := flag.String("login-id", "demouser", "login id to seed")
	password := flag.String("password", "Demo!pass1", "plaintext password")
	name := flag.String("name", "demoUser", "display name")
	birthday := flag.String("birthday", "1990-01-01", "birthday (yyyy-MM-dd)")
	email := flag.String("email", "demo@example.com", "email address")
	flag.Parse()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{DSN: cfg.PostgresDSN(), MaxConns: 2})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	encoder, err := security.NewSaltedHashEncoder(security.Config{
		Algorithm:  cfg.PasswordHashAlgorithm,
		SaltLength: cfg.PasswordSaltBytes,
	})
	if err != nil {
		logger.WithError(err).Fatal("invalid password encoder settings")
	}

	repo := pginfra.NewUserRepository(pool)
	svc := userapp.NewService(repo, encoder, nil)

	identifier, err := entity.NewIdentifier(*loginID)
	if err != nil {
		logger.WithError(err).Fatal("invalid login id")
	}
	exists, err := repo.ExistsByIdentifier(ctx, identifier)
	if err != nil {
		logger.WithError(err).Fatal("failed to look up identity")
	}
	fields := logrus.Fields{"login_id": identifier.String()}
	if exists {
		logger.WithFields(fields).Info("identity already seeded, skipping")
		return
	}

	bd, err := time.Parse(entity.BirthDateLayout, *birthday)
	if err != nil {
		logger.WithError(err).Fatal("invalid birthday")
	}
	err = svc.Register(ctx, *loginID, *name, *password, bd, *email)
	switch {
	case errors.Is(err, userapp.ErrDuplicateIdentity):
		logger.WithFields(fields).Info("identity registered concurrently, skipping")
	case err != nil:
		logger.WithError(err).WithFields(fields).Fatal("failed to seed identity")
	default:
		logger.WithFields(fields).Info("seeded identity")
	}
}
