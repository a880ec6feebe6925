package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dexhamter/tabload/internal/retry"
	"github.com/dexhamter/tabload/pkg/tabload"
)

// TokenBasedConnector serves the cloud auth flows that present a short-lived
// token as the PostgreSQL password (AWS IAM, Azure Entra ID). A fresh token
// is fetched on every attempt, so a token expiring mid-retry never wedges
// the loop.
type TokenBasedConnector struct {
	config        *tabload.ConnectionConfig
	tokenProvider TokenProvider
	retryExecutor *retry.Executor
	providerName  string
}

// NewTokenBasedConnector wraps a TokenProvider with the standard retry
// policy. providerName labels warnings and errors ("AWS IAM", "Azure").
func NewTokenBasedConnector(config *tabload.ConnectionConfig, tokenProvider TokenProvider, providerName string) *TokenBasedConnector {
	executor := retry.NewExecutor(
		retry.NewPostgreSQLErrorClassifier(),
		retry.NewExponentialBackoff(tabload.DefaultRetryMaxAttempts,
			retry.WithInitialDelay(tabload.DefaultRetryInitialDelay),
			retry.WithMaxDelay(tabload.DefaultRetryMaxDelay),
		),
	)

	return &TokenBasedConnector{
		config:        config,
		tokenProvider: tokenProvider,
		retryExecutor: executor,
		providerName:  providerName,
	}
}

func (c *TokenBasedConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool

	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		p, err := c.connectOnce(ctx)
		if err != nil {
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pool, nil
}

func (c *TokenBasedConnector) connectOnce(ctx context.Context) (*pgxpool.Pool, error) {
	token, expiresOn, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire %s token: %w", c.providerName, err)
	}

	if remaining := time.Until(expiresOn); remaining < 5*time.Minute {
		fmt.Printf("Warning: %s token expires in %v\n", c.providerName, remaining.Round(time.Second))
	}

	// the token rides in the password slot of an otherwise normal DSN
	withToken := *c.config
	withToken.Password = token

	poolConfig, err := pgxpool.ParseConfig(BuildConnectionString(&withToken))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}
	configurePool(poolConfig)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
	}

	return pool, nil
}
