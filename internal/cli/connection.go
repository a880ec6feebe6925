package cli

import (
	"os"

	"github.com/dexhamter/tabload/internal/config"
	"github.com/dexhamter/tabload/internal/db"
	"github.com/dexhamter/tabload/pkg/tabload"
)

// connectionStringFromEnv returns the first non-empty connection string from
// TABLOAD_CONNECTION_STRING or DATABASE_URL environment variables.
func connectionStringFromEnv() string {
	if s := os.Getenv("TABLOAD_CONNECTION_STRING"); s != "" {
		return s
	}
	return os.Getenv("DATABASE_URL")
}

// hasEnvConnectionSource returns true if environment variables provide enough
// connection info to skip the interactive wizard.
func hasEnvConnectionSource() bool {
	if connectionStringFromEnv() != "" {
		return true
	}
	return os.Getenv("PGHOST") != "" && os.Getenv("PGDATABASE") != ""
}

// resolveConnection consolidates connection resolution for the import command
// and the init wizard. It handles the connection string flag, granular flags,
// Azure/AWS/Google flags, environment variables and tabload.yaml.
func resolveConnection(
	connStringFlag string,
	granularFlags *db.GranularConnFlags,
	azureFlags *db.AzureFlags,
	awsFlags *db.AWSFlags,
	googleFlags *db.GoogleFlags,
	projectConfig *config.ProjectConfig,
	verbose bool,
) (*tabload.ConnectionConfig, error) {
	// Environment connection strings only apply when no granular flags were
	// given; explicit flags always win over the environment.
	connString := connStringFlag
	if connString == "" && granularFlags.IsEmpty() {
		connString = connectionStringFromEnv()
	}

	envVars := db.LoadFromEnvironment()

	connConfig, err := db.ResolveConnectionParams(
		connString,
		granularFlags,
		azureFlags,
		awsFlags,
		googleFlags,
		envVars,
		projectConfig,
	)
	if err != nil {
		return nil, err
	}

	return connConfig, nil
}
