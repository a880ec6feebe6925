package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type ConnectionConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	Database       string `yaml:"database"`
	SSLMode        string `yaml:"sslmode"`
	AuthMethod     string `yaml:"auth_method,omitempty"`
	AzureTenantID  string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID  string `yaml:"azure_client_id,omitempty"`
	AWSRegion      string `yaml:"aws_region,omitempty"`
	GoogleInstance string `yaml:"google_instance,omitempty"`
}

type CSVConfig struct {
	Delimiter    string   `yaml:"delimiter,omitempty"`
	NullLiterals []string `yaml:"null_literals,omitempty"`
}

type DefaultsConfig struct {
	IfExists         string `yaml:"if_exists,omitempty"`
	ChunkSize        int    `yaml:"chunk_size,omitempty"`
	ChunkThresholdMB int64  `yaml:"chunk_threshold_mb,omitempty"`
	StrictSchema     bool   `yaml:"strict_schema,omitempty"`
}

type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	CSV        CSVConfig        `yaml:"csv"`
	Defaults   DefaultsConfig   `yaml:"defaults"`
	Timeout    string           `yaml:"timeout"`
}

const ConfigFileName = "tabload.yaml"

func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
