package cli

import (
	"strings"
	"testing"

	"github.com/dexhamter/tabload/internal/db"
)

func TestConnectionStringFromEnv(t *testing.T) {
	t.Run("TABLOAD_CONNECTION_STRING wins over DATABASE_URL", func(t *testing.T) {
		t.Setenv("TABLOAD_CONNECTION_STRING", "postgresql://user@primary:5432/db1")
		t.Setenv("DATABASE_URL", "postgresql://user@secondary:5432/db2")

		if got := connectionStringFromEnv(); got != "postgresql://user@primary:5432/db1" {
			t.Errorf("connectionStringFromEnv() = %q, want the TABLOAD_CONNECTION_STRING value", got)
		}
	})

	t.Run("DATABASE_URL as fallback", func(t *testing.T) {
		t.Setenv("TABLOAD_CONNECTION_STRING", "")
		t.Setenv("DATABASE_URL", "postgresql://user@secondary:5432/db2")

		if got := connectionStringFromEnv(); got != "postgresql://user@secondary:5432/db2" {
			t.Errorf("connectionStringFromEnv() = %q, want the DATABASE_URL value", got)
		}
	})

	t.Run("empty when neither set", func(t *testing.T) {
		t.Setenv("TABLOAD_CONNECTION_STRING", "")
		t.Setenv("DATABASE_URL", "")

		if got := connectionStringFromEnv(); got != "" {
			t.Errorf("connectionStringFromEnv() = %q, want empty", got)
		}
	})
}

func TestHasEnvConnectionSource(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"connection string env", map[string]string{"TABLOAD_CONNECTION_STRING": "postgresql://u@h/db"}, true},
		{"database url env", map[string]string{"DATABASE_URL": "postgresql://u@h/db"}, true},
		{"pg host and database", map[string]string{"PGHOST": "dbhost", "PGDATABASE": "mydb"}, true},
		{"pg host alone is not enough", map[string]string{"PGHOST": "dbhost"}, false},
		{"nothing set", map[string]string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConnectionEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := hasEnvConnectionSource(); got != tt.want {
				t.Errorf("hasEnvConnectionSource() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveConnection_WithEnvironment(t *testing.T) {
	tests := []struct {
		name           string
		connStringFlag string
		envConnString  string
		granularFlags  *db.GranularConnFlags
		wantHost       string
	}{
		{
			name:           "flag beats environment",
			connStringFlag: "postgresql://user@localhost:5432/flagdb",
			envConnString:  "postgresql://user@envhost:5433/envdb",
			granularFlags:  &db.GranularConnFlags{},
			wantHost:       "localhost",
		},
		{
			name:          "environment used without a flag",
			envConnString: "postgresql://user@envhost:5433/envdb",
			granularFlags: &db.GranularConnFlags{},
			wantHost:      "envhost",
		},
		{
			name:          "granular flags suppress the env connection string",
			envConnString: "postgresql://user@envhost:5433/envdb",
			granularFlags: &db.GranularConnFlags{Host: "flaghost"},
			wantHost:      "flaghost",
		},
		{
			name:          "defaults when nothing is provided",
			granularFlags: &db.GranularConnFlags{},
			wantHost:      "localhost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConnectionEnv(t)
			if tt.envConnString != "" {
				t.Setenv("TABLOAD_CONNECTION_STRING", tt.envConnString)
			}

			connConfig, err := resolveConnection(
				tt.connStringFlag, tt.granularFlags,
				&db.AzureFlags{}, &db.AWSFlags{}, &db.GoogleFlags{},
				nil, false,
			)
			if err != nil {
				t.Fatalf("resolveConnection failed: %v", err)
			}
			if connConfig.Host != tt.wantHost {
				t.Errorf("Host = %q, want %q", connConfig.Host, tt.wantHost)
			}
		})
	}
}

func TestResolveConnection_GranularFlags(t *testing.T) {
	t.Run("all flags provided", func(t *testing.T) {
		clearConnectionEnv(t)

		connConfig, err := resolveConnection(
			"",
			&db.GranularConnFlags{Host: "customhost", Port: 5433, Username: "customuser", Database: "customdb", SSLMode: "require"},
			&db.AzureFlags{}, &db.AWSFlags{}, &db.GoogleFlags{},
			nil, false,
		)
		if err != nil {
			t.Fatalf("resolveConnection failed: %v", err)
		}

		if connConfig.Host != "customhost" || connConfig.Port != 5433 ||
			connConfig.Username != "customuser" || connConfig.Database != "customdb" ||
			connConfig.SSLMode != "require" {
			t.Errorf("flags not applied: %+v", connConfig)
		}
	})

	t.Run("partial flags fall back to defaults", func(t *testing.T) {
		clearConnectionEnv(t)

		connConfig, err := resolveConnection(
			"",
			&db.GranularConnFlags{Host: "myhost", Database: "mydb"},
			&db.AzureFlags{}, &db.AWSFlags{}, &db.GoogleFlags{},
			nil, false,
		)
		if err != nil {
			t.Fatalf("resolveConnection failed: %v", err)
		}

		if connConfig.Host != "myhost" || connConfig.Database != "mydb" {
			t.Errorf("flags not applied: %+v", connConfig)
		}
		if connConfig.Port != 5432 {
			t.Errorf("Port = %d, want the 5432 default", connConfig.Port)
		}
	})

	t.Run("no flags yields all defaults", func(t *testing.T) {
		clearConnectionEnv(t)

		connConfig, err := resolveConnection(
			"", &db.GranularConnFlags{},
			&db.AzureFlags{}, &db.AWSFlags{}, &db.GoogleFlags{},
			nil, false,
		)
		if err != nil {
			t.Fatalf("resolveConnection failed: %v", err)
		}

		if connConfig.Host != "localhost" || connConfig.Port != 5432 || connConfig.SSLMode != "prefer" {
			t.Errorf("defaults not applied: host=%q port=%d sslmode=%q",
				connConfig.Host, connConfig.Port, connConfig.SSLMode)
		}
	})
}

func TestResolveConnectionFromFlags_DatabaseOverride(t *testing.T) {
	clearConnectionEnv(t)

	flags := connectionFlags{
		connection: "postgresql://user@dbhost:5432/original",
		database:   "override",
	}

	resolved, err := resolveConnectionFromFlags(flags, nil, false)
	if err != nil {
		t.Fatalf("resolveConnectionFromFlags failed: %v", err)
	}
	if resolved.ConnConfig.Database != "override" {
		t.Errorf("Database = %q, want the -d override", resolved.ConnConfig.Database)
	}
}

func TestResolveConnectionFromFlags_ErrorMessages(t *testing.T) {
	clearConnectionEnv(t)

	_, err := resolveConnectionFromFlags(connectionFlags{host: "dbhost"}, nil, false)
	if err == nil {
		t.Fatal("expected an error when no database is provided")
	}

	for _, phrase := range []string{
		"database name is required",
		"--database/-d flag",
		"Connection string",
		"Environment variable",
	} {
		if !strings.Contains(err.Error(), phrase) {
			t.Errorf("error missing %q:\n%s", phrase, err.Error())
		}
	}
}
