package db

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dexhamter/tabload/internal/config"
	"github.com/dexhamter/tabload/pkg/tabload"
)

// GranularConnFlags carries the psql-style connection flags (-h, -p, -U, -d).
//
// There is deliberately no password flag; passwords come from $PGPASSWORD,
// ~/.pgpass, or an embedded connection string.
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty reports whether the user supplied any granular connection flag.
// Database is excluded: it may override the database inside a connection
// string without counting as a conflict.
func (g *GranularConnFlags) IsEmpty() bool {
	return g.Host == "" && g.Port == 0 && g.Username == "" && g.SSLMode == ""
}

// AzureFlags carries the Azure Entra ID flags. They override the AZURE_*
// environment variables; the client secret has no flag and is env-only.
type AzureFlags struct {
	Enabled  bool   // --azure
	TenantID string // overrides AZURE_TENANT_ID
	ClientID string // overrides AZURE_CLIENT_ID
}

func (a *AzureFlags) IsEmpty() bool {
	return a == nil || (!a.Enabled && a.TenantID == "" && a.ClientID == "")
}

// AWSFlags carries the AWS RDS IAM flags.
type AWSFlags struct {
	Enabled bool   // --aws
	Region  string // overrides aws_region in tabload.yaml
}

// GoogleFlags carries the Google Cloud SQL IAM flags.
type GoogleFlags struct {
	Enabled  bool   // --google
	Instance string // overrides google_instance in tabload.yaml
}

// EnvVars snapshots the libpq-standard PG* variables plus DATABASE_URL and
// the Azure SDK credential variables.
type EnvVars struct {
	PGHOST       string
	PGPORT       string
	PGUSER       string
	PGPASSWORD   string
	PGDATABASE   string
	PGSSLMODE    string
	DATABASE_URL string

	AZURE_TENANT_ID     string
	AZURE_CLIENT_ID     string
	AZURE_CLIENT_SECRET string
}

// LoadFromEnvironment snapshots the connection-related environment.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		PGHOST:              os.Getenv("PGHOST"),
		PGPORT:              os.Getenv("PGPORT"),
		PGUSER:              os.Getenv("PGUSER"),
		PGPASSWORD:          os.Getenv("PGPASSWORD"),
		PGDATABASE:          os.Getenv("PGDATABASE"),
		PGSSLMODE:           os.Getenv("PGSSLMODE"),
		DATABASE_URL:        os.Getenv("DATABASE_URL"),
		AZURE_TENANT_ID:     os.Getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:     os.Getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET: os.Getenv("AZURE_CLIENT_SECRET"),
	}
}

// HasAzureCredentials reports whether any Azure identity variable is set.
func (e *EnvVars) HasAzureCredentials() bool {
	return e.AZURE_TENANT_ID != "" || e.AZURE_CLIENT_ID != ""
}

// firstNonEmpty returns the first non-empty string, the precedence primitive
// for flag > env > tabload.yaml > default chains.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ResolveConnectionParams merges all connection parameter sources using
// PostgreSQL-standard precedence:
//
//  1. --connection flag: parsed and used directly
//  2. $DATABASE_URL: used when no granular flags are set
//  3. Granular flags merged with PG* env vars and tabload.yaml, highest wins
//  4. Defaults (localhost:5432, sslmode prefer)
//
// --azure, --aws and --google are mutually exclusive and select token-based
// authentication. Azure credentials resolve flag > AZURE_* env;
// AZURE_CLIENT_SECRET is env-only. With no provider flag or Azure env var,
// auth_method from tabload.yaml applies.
//
// Supplying both --connection and granular flags is an error so intent stays
// unambiguous.
func ResolveConnectionParams(
	connStringFlag string,
	granularFlags *GranularConnFlags,
	azureFlags *AzureFlags,
	awsFlags *AWSFlags,
	googleFlags *GoogleFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*tabload.ConnectionConfig, error) {
	if granularFlags == nil {
		granularFlags = &GranularConnFlags{}
	}
	if azureFlags == nil {
		azureFlags = &AzureFlags{}
	}
	if awsFlags == nil {
		awsFlags = &AWSFlags{}
	}
	if googleFlags == nil {
		googleFlags = &GoogleFlags{}
	}
	if envVars == nil {
		envVars = &EnvVars{}
	}

	if connStringFlag != "" && !granularFlags.IsEmpty() {
		return nil, fmt.Errorf(
			"cannot specify both --connection and granular flags (-h, -p, -U)\n" +
				"Choose one approach:\n" +
				"  1. Connection string: --connection \"postgresql://user@localhost:5432/mydb\"\n" +
				"  2. Granular flags: -h localhost -p 5432 -U myuser -d mydb\n" +
				"  3. Environment variables: export PGHOST=localhost PGPORT=5432 PGUSER=myuser",
		)
	}

	var connConfig *tabload.ConnectionConfig
	var err error
	switch {
	case connStringFlag != "":
		connConfig, err = resolveFromConnectionString(connStringFlag, envVars)
	case granularFlags.IsEmpty() && envVars.DATABASE_URL != "":
		connConfig, err = resolveFromConnectionString(envVars.DATABASE_URL, envVars)
	default:
		connConfig, err = resolveFromGranularParams(granularFlags, envVars, projectConfig)
	}
	if err != nil {
		return nil, err
	}

	if err := resolveAuthMethod(connConfig, azureFlags, awsFlags, googleFlags, envVars, projectConfig); err != nil {
		return nil, err
	}
	return connConfig, nil
}

// resolveAuthMethod picks the authentication method from provider flags,
// environment variables and tabload.yaml, in that order.
func resolveAuthMethod(
	connConfig *tabload.ConnectionConfig,
	azureFlags *AzureFlags,
	awsFlags *AWSFlags,
	googleFlags *GoogleFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) error {
	enabled := 0
	for _, on := range []bool{azureFlags.Enabled, awsFlags.Enabled, googleFlags.Enabled} {
		if on {
			enabled++
		}
	}
	if enabled > 1 {
		return fmt.Errorf("cannot combine --azure, --aws and --google: choose one authentication method")
	}

	var yamlConn config.ConnectionConfig
	if projectConfig != nil {
		yamlConn = projectConfig.Connection
	}

	switch {
	case awsFlags.Enabled:
		connConfig.AuthMethod = tabload.AuthMethodAWSIAM
		connConfig.AWSRegion = firstNonEmpty(awsFlags.Region, yamlConn.AWSRegion)
		return nil
	case googleFlags.Enabled:
		connConfig.AuthMethod = tabload.AuthMethodGoogleIAM
		connConfig.GoogleInstance = firstNonEmpty(googleFlags.Instance, yamlConn.GoogleInstance)
		return nil
	case !azureFlags.IsEmpty() || envVars.HasAzureCredentials():
		applyAzureAuth(connConfig, azureFlags, envVars)
		return nil
	default:
		return applyConfigFileAuth(connConfig, envVars, yamlConn)
	}
}

// applyAzureAuth switches to Azure Entra ID auth when any Azure credential is
// present. Flags beat environment variables; the secret is env-only.
func applyAzureAuth(connConfig *tabload.ConnectionConfig, flags *AzureFlags, env *EnvVars) {
	tenantID := firstNonEmpty(flags.TenantID, env.AZURE_TENANT_ID)
	clientID := firstNonEmpty(flags.ClientID, env.AZURE_CLIENT_ID)

	if flags.Enabled || tenantID != "" || clientID != "" {
		connConfig.AuthMethod = tabload.AuthMethodAzureEntraID
		connConfig.AzureTenantID = tenantID
		connConfig.AzureClientID = clientID
		connConfig.AzureClientSecret = env.AZURE_CLIENT_SECRET
	}
}

// applyConfigFileAuth applies auth_method from tabload.yaml when neither a
// provider flag nor an environment variable selected one.
func applyConfigFileAuth(connConfig *tabload.ConnectionConfig, envVars *EnvVars, yamlConn config.ConnectionConfig) error {
	switch yamlConn.AuthMethod {
	case "", "standard":
		return nil
	case "azure_entra_id":
		connConfig.AuthMethod = tabload.AuthMethodAzureEntraID
		connConfig.AzureTenantID = yamlConn.AzureTenantID
		connConfig.AzureClientID = yamlConn.AzureClientID
		connConfig.AzureClientSecret = envVars.AZURE_CLIENT_SECRET
		return nil
	case "aws_iam":
		connConfig.AuthMethod = tabload.AuthMethodAWSIAM
		connConfig.AWSRegion = yamlConn.AWSRegion
		return nil
	case "google_iam":
		connConfig.AuthMethod = tabload.AuthMethodGoogleIAM
		connConfig.GoogleInstance = yamlConn.GoogleInstance
		return nil
	default:
		return fmt.Errorf(
			"invalid auth_method %q in %s: use standard, azure_entra_id, aws_iam or google_iam",
			yamlConn.AuthMethod, config.ConfigFileName,
		)
	}
}

// resolveFromConnectionString parses connStr and fills SSL mode from
// $PGSSLMODE, then "prefer", matching libpq's fallback behavior.
func resolveFromConnectionString(connStr string, envVars *EnvVars) (*tabload.ConnectionConfig, error) {
	connConfig, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w", err)
	}

	if connConfig.SSLMode == "" && envVars != nil {
		connConfig.SSLMode = envVars.PGSSLMODE
	}
	if connConfig.SSLMode == "" {
		connConfig.SSLMode = "prefer"
	}
	return connConfig, nil
}

// resolveFromGranularParams merges each parameter as
// flag > env var > tabload.yaml > default.
func resolveFromGranularParams(
	flags *GranularConnFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*tabload.ConnectionConfig, error) {
	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	cfg := &tabload.ConnectionConfig{
		AuthMethod:       tabload.AuthMethodStandard,
		AdditionalParams: make(map[string]string),
		Host:             firstNonEmpty(flags.Host, envVars.PGHOST, pc.Host, "localhost"),
		Username:         firstNonEmpty(flags.Username, envVars.PGUSER, pc.Username),
		Password:         envVars.PGPASSWORD,
		Database:         firstNonEmpty(flags.Database, envVars.PGDATABASE, pc.Database),
		SSLMode:          firstNonEmpty(flags.SSLMode, envVars.PGSSLMODE, pc.SSLMode, "prefer"),
	}

	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case envVars.PGPORT != "":
		port, err := strconv.Atoi(envVars.PGPORT)
		if err != nil {
			return nil, fmt.Errorf("invalid $PGPORT value '%s': must be an integer", envVars.PGPORT)
		}
		cfg.Port = port
	case pc.Port != 0:
		cfg.Port = pc.Port
	default:
		cfg.Port = 5432
	}

	// Last resort for the username: the OS login, like psql.
	if cfg.Username == "" {
		cfg.Username = firstNonEmpty(os.Getenv("USER"), os.Getenv("USERNAME"))
	}

	return cfg, nil
}
