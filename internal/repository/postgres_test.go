package repository_test

import (
	"context"
	"fmt"
	"time"

	"github.com/nikolayk812/vatmoss/internal/repository"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres runs a throwaway database with the schema migrated.
func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := postgres.Run(ctx, "postgres:17-alpine",
		postgres.WithDatabase("vatmoss"),
		postgres.WithUsername("vatmoss"),
		postgres.WithPassword("vatmoss"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	pool, err := repository.Connect(ctx, connStr)
	if err != nil {
		return container, "", fmt.Errorf("repository.Connect: %w", err)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		return container, "", fmt.Errorf("repository.Migrate: %w", err)
	}

	return container, connStr, nil
}
