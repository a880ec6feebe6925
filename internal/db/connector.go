package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dexhamter/tabload/internal/retry"
	"github.com/dexhamter/tabload/pkg/tabload"
)

// Pool sizing. Imports are mostly a single COPY stream, so the pool stays
// small; idle connections are kept warm between chunks of large files.
const (
	DefaultMaxConns        = 5
	DefaultMinConns        = 1
	DefaultMaxConnIdleTime = 30 * time.Minute
)

func configurePool(poolConfig *pgxpool.Config) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		fmt.Println(notice.Message)
	}
}

// StandardConnector connects with username/password credentials, retrying
// transient failures with exponential backoff.
type StandardConnector struct {
	config        *tabload.ConnectionConfig
	retryExecutor *retry.Executor
}

// NewStandardConnector builds a connector with the default retry policy
// (DefaultRetryMaxAttempts attempts, DefaultRetryInitialDelay to
// DefaultRetryMaxDelay backoff).
func NewStandardConnector(config *tabload.ConnectionConfig) *StandardConnector {
	executor := retry.NewExecutor(
		retry.NewPostgreSQLErrorClassifier(),
		retry.NewExponentialBackoff(tabload.DefaultRetryMaxAttempts,
			retry.WithInitialDelay(tabload.DefaultRetryInitialDelay),
			retry.WithMaxDelay(tabload.DefaultRetryMaxDelay),
		),
	)

	return &StandardConnector{config: config, retryExecutor: executor}
}

// Connect opens a pgx pool and verifies it with a ping. Transient failures
// are retried per the connector's policy.
func (c *StandardConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	connStr := BuildConnectionString(c.config)

	var pool *pgxpool.Pool
	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		poolConfig, err := pgxpool.ParseConfig(connStr)
		if err != nil {
			return fmt.Errorf("failed to parse connection config: %w", err)
		}
		configurePool(poolConfig)

		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pool, nil
}

// NewConnector picks the Connector implementation for the config's
// AuthMethod.
func NewConnector(config *tabload.ConnectionConfig) (tabload.Connector, error) {
	switch config.AuthMethod {
	case tabload.AuthMethodStandard:
		return NewStandardConnector(config), nil
	case tabload.AuthMethodAWSIAM:
		return newAWSConnector(config)
	case tabload.AuthMethodGoogleIAM:
		return newGoogleConnector(config)
	case tabload.AuthMethodAzureEntraID:
		return newAzureConnector(config)
	default:
		return nil, fmt.Errorf("unsupported auth method %v: %w", config.AuthMethod, tabload.ErrUnsupportedAuthMethod)
	}
}

// wrapConnectionError chains ErrConnectionFailed (for exit-code mapping) onto
// a diagnosis of the raw pgx error.
func wrapConnectionError(err error, host string, port int, database string) error {
	return fmt.Errorf("%w: %w", tabload.ErrConnectionFailed, connectionGuidance(err, host, port, database))
}

// connGuidanceRule matches a raw connection error by message substrings and
// renders a diagnosis with likely causes.
type connGuidanceRule struct {
	substrings []string
	render     func(host string, port int, database string) string
}

var connGuidanceRules = []connGuidanceRule{
	{
		substrings: []string{"connection refused", "actively refused"},
		render: func(host string, port int, _ string) string {
			return fmt.Sprintf("connection refused to %s:%d\n\n"+
				"Possible causes:\n"+
				"  - PostgreSQL is not running (check: pg_isready -h %s -p %d)\n"+
				"  - Wrong host or port\n"+
				"  - Firewall blocking the connection", host, port, host, port)
		},
	},
	{
		substrings: []string{"no such host", "no host"},
		render: func(host string, _ int, _ string) string {
			return fmt.Sprintf("cannot resolve host %q\n\n"+
				"Possible causes:\n"+
				"  - Hostname is misspelled\n"+
				"  - DNS is not configured or reachable\n"+
				"  - Network connection issue", host)
		},
	},
	{
		substrings: []string{"password authentication failed"},
		render: func(_ string, _ int, database string) string {
			return fmt.Sprintf("password authentication failed for database %q\n\n"+
				"Possible causes:\n"+
				"  - Wrong password (check $PGPASSWORD or ~/.pgpass)\n"+
				"  - Wrong username\n"+
				"  - User does not have access to the database", database)
		},
	},
	{
		substrings: []string{"does not exist"},
		render: func(_ string, _ int, database string) string {
			return fmt.Sprintf("database %q does not exist\n\n"+
				"To create it:\n"+
				"  createdb %s\n\n"+
				"tabload creates tables, never databases.", database, database)
		},
	},
	{
		substrings: []string{"timeout", "timed out"},
		render: func(host string, port int, _ string) string {
			return fmt.Sprintf("connection timed out to %s:%d\n\n"+
				"Possible causes:\n"+
				"  - Server is overloaded or unresponsive\n"+
				"  - Network latency or packet loss\n"+
				"  - Firewall silently dropping packets\n"+
				"  - Wrong host/port (server not listening)", host, port)
		},
	},
	{
		substrings: []string{"ssl", "tls"},
		render: func(_ string, _ int, _ string) string {
			return "SSL/TLS connection error\n\n" +
				"Possible causes:\n" +
				"  - Server requires SSL but --sslmode is wrong\n" +
				"  - Certificate verification failed (try --sslmode=require)"
		},
	},
	{
		substrings: []string{"too many connections"},
		render: func(_ string, _ int, database string) string {
			return fmt.Sprintf("too many connections to database %q\n\n"+
				"Possible causes:\n"+
				"  - Connection pool exhausted on server\n"+
				"  - max_connections limit reached in postgresql.conf\n"+
				"  - Stale connections from previous imports\n\n"+
				"Try: SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = '%s';",
				database, database)
		},
	},
}

// connectionGuidance matches the raw error against known failure shapes and
// wraps it with a diagnosis. The original error always stays in the chain.
func connectionGuidance(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())

	for _, rule := range connGuidanceRules {
		for _, sub := range rule.substrings {
			if strings.Contains(errStr, sub) {
				return fmt.Errorf("%s\n\nOriginal error: %w",
					rule.render(host, port, database), err)
			}
		}
	}

	return fmt.Errorf("failed to connect to database: %w", err)
}

func newAWSConnector(config *tabload.ConnectionConfig) (tabload.Connector, error) {
	endpoint := fmt.Sprintf("%s:%d", config.Host, config.Port)

	tokenProvider, err := NewAWSIAMTokenProvider(endpoint, config.AWSRegion, config.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS IAM token provider: %w", err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "AWS IAM"), nil
}

func newGoogleConnector(config *tabload.ConnectionConfig) (tabload.Connector, error) {
	if config.GoogleInstance == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires --google-instance (project:region:instance)")
	}
	if config.Username == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires username (-U)")
	}

	return NewGoogleCloudSQLConnector(config, config.GoogleInstance), nil
}

// newAzureConnector prefers Service Principal credentials when tenant, client
// and secret are all present; otherwise it falls back to the
// DefaultAzureCredential chain.
func newAzureConnector(config *tabload.ConnectionConfig) (tabload.Connector, error) {
	var tokenProvider TokenProvider
	var err error

	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		tokenProvider, err = NewAzureServicePrincipalProvider(
			config.AzureTenantID, config.AzureClientID, config.AzureClientSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Service Principal provider: %w", err)
		}
	} else {
		tokenProvider, err = NewAzureDefaultCredentialProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Default Credential provider: %w", err)
		}
	}

	return NewTokenBasedConnector(config, tokenProvider, "Azure"), nil
}
