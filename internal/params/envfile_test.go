package params

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEnvFile_ValidContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    map[string]string
	}{
		{
			name:    "plain key-value pairs",
			content: "KEY1=value1\nKEY2=value2\nKEY3=value3",
			want:    map[string]string{"KEY1": "value1", "KEY2": "value2", "KEY3": "value3"},
		},
		{
			name:    "unquoted values keep interior spaces",
			content: "NAME=John Doe\nADDRESS=123 Main Street",
			want:    map[string]string{"NAME": "John Doe", "ADDRESS": "123 Main Street"},
		},
		{
			name:    "double quotes are stripped",
			content: "NAME=\"John Doe\"\nPATH=\"/usr/local/bin\"",
			want:    map[string]string{"NAME": "John Doe", "PATH": "/usr/local/bin"},
		},
		{
			name:    "single quotes are stripped",
			content: "NAME='John Doe'\nPATH='/usr/local/bin'",
			want:    map[string]string{"NAME": "John Doe", "PATH": "/usr/local/bin"},
		},
		{
			name:    "comments and blank lines are skipped",
			content: "# This is a comment\nKEY1=value1\n\n# Another comment\nKEY2=value2\n\n",
			want:    map[string]string{"KEY1": "value1", "KEY2": "value2"},
		},
		{
			name:    "whitespace around the equals sign",
			content: "KEY1 = value1\nKEY2= value2\nKEY3 =value3\nKEY4  =  value4",
			want:    map[string]string{"KEY1": "value1", "KEY2": "value2", "KEY3": "value3", "KEY4": "value4"},
		},
		{
			name:    "empty values, bare and quoted",
			content: "KEY1=\nKEY2=\"\"\nKEY3=''",
			want:    map[string]string{"KEY1": "", "KEY2": "", "KEY3": ""},
		},
		{
			name:    "only the first equals sign splits",
			content: "CONN=host=localhost port=5432\nURL=https://example.com?foo=bar",
			want: map[string]string{
				"CONN": "host=localhost port=5432",
				"URL":  "https://example.com?foo=bar",
			},
		},
		{
			name: "realistic mixed file",
			content: `# Database Configuration
DB_HOST=localhost
DB_PORT=5432
DB_NAME=myapp_production
DB_USER=admin

# API Configuration
API_KEY="sk-1234567890abcdef"
API_URL='https://api.example.com/v1'

# Feature Flags
ENABLE_CACHE=true
MAX_CONNECTIONS=100`,
			want: map[string]string{
				"DB_HOST":         "localhost",
				"DB_PORT":         "5432",
				"DB_NAME":         "myapp_production",
				"DB_USER":         "admin",
				"API_KEY":         "sk-1234567890abcdef",
				"API_URL":         "https://api.example.com/v1",
				"ENABLE_CACHE":    "true",
				"MAX_CONNECTIONS": "100",
			},
		},
		{
			name:    "empty file",
			content: "",
			want:    map[string]string{},
		},
		{
			name:    "comments only",
			content: "# Comment 1\n# Comment 2\n# Comment 3",
			want:    map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEnvFile([]byte(tt.content))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseEnvFile_InvalidContent(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantError string
	}{
		{"line without equals", "INVALID_LINE", "invalid format"},
		{"empty key", "=value", "empty key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEnvFile([]byte(tt.content))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantError)
		})
	}
}
