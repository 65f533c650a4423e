package router

import (
	"context"
	"fmt"

	"github.com/oksasatya/go-ddd-credentials/config"
	appuser "github.com/oksasatya/go-ddd-credentials/internal/application"
	"github.com/oksasatya/go-ddd-credentials/internal/container"
	repouser "github.com/oksasatya/go-ddd-credentials/internal/domain/repository"
	"github.com/oksasatya/go-ddd-credentials/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-ddd-credentials/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-credentials/internal/infrastructure/redisstore"
	"github.com/oksasatya/go-ddd-credentials/internal/infrastructure/security"
	handlers "github.com/oksasatya/go-ddd-credentials/internal/interface/http"
	"github.com/oksasatya/go-ddd-credentials/internal/router/modules"
	"github.com/oksasatya/go-ddd-credentials/pkg/helpers"
)

type UserModuleDeps struct {
	Repo    repouser.IdentityRepository
	Service *appuser.Service
	Handler *handlers.UserHandler
}

func buildIdentityRepository() repouser.IdentityRepository {
	if pool := container.GetPGPool(); pool != nil {
		return pginfra.NewUserRepository(pool)
	}
	return memory.NewUserRepository()
}

// buildAttemptCounter returns nil when lockout is disabled.
func buildAttemptCounter(cfg *config.Config) repouser.AttemptCounter {
	if !cfg.LockoutEnabled {
		return nil
	}
	if rdb := container.GetRedis(); rdb != nil {
		return redisstore.NewAttemptCounter(rdb, cfg.LockoutWindow)
	}
	return memory.NewAttemptCounter(cfg.LockoutWindow)
}

func buildPublisher(cfg *config.Config) handlers.Publisher {
	if !cfg.MailSendEnabled {
		return nil
	}
	if pub := container.GetRabbitPub(); pub != nil {
		return pub
	}
	return nil
}

func buildUserDeps() (UserModuleDeps, error) {
	cfg := container.GetConfig()

	encoder, err := security.NewSaltedHashEncoder(security.Config{
		Algorithm:  cfg.PasswordHashAlgorithm,
		SaltLength: cfg.PasswordSaltBytes,
	})
	if err != nil {
		return UserModuleDeps{}, fmt.Errorf("password encoder: %w", err)
	}

	repo := buildIdentityRepository()
	service := appuser.NewService(repo, encoder, buildAttemptCounter(cfg))
	handler := handlers.NewUserHandler(service, container.GetLogger(), cfg, buildPublisher(cfg))

	return UserModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}, nil
}

func buildHealthChecks() map[string]modules.Check {
	checks := map[string]modules.Check{}
	if pool := container.GetPGPool(); pool != nil {
		checks["postgres"] = pool.Ping
	}
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return checks
}

// InitModules wires every module from the container and adds it to the registry.
// Call once during startup after the container is populated.
func InitModules(r *Registry) error {
	userDeps, err := buildUserDeps()
	if err != nil {
		return err
	}
	r.AddRoot(modules.NewHealthModule(buildHealthChecks()))
	r.Add(modules.NewUserModule(userDeps.Handler, userDeps.Service, container.GetLogger()))

	helpers.LogInfo(container.GetLogger(), "modules registered", map[string]any{
		"store":   container.GetConfig().StoreDriver,
		"lockout": container.GetConfig().LockoutEnabled,
		"mail":    userDeps.Handler.Pub != nil,
	})
	return nil
}
