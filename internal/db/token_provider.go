package db

import (
	"context"
	"time"
)

// TokenProvider acquires short-lived credentials for cloud-hosted PostgreSQL.
// The token is sent as the connection password; implementations exist for
// Azure Entra ID and AWS RDS IAM, and tests substitute fakes.
type TokenProvider interface {
	// GetToken returns the token and when it expires.
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String describes the provider for logs. Must not leak secrets.
	String() string
}

// AzurePostgreSQLScope is the OAuth resource Azure AD issues PostgreSQL
// access tokens for.
const AzurePostgreSQLScope = "https://ossrdbms-aad.database.windows.net/.default"
