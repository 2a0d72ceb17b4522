package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"TOKEN",
	"GROUP_FULL_PATH",
	"EPIC_ROOT_ID",
	"REPOSITORY_NAME",
	"TARGET_CATEGORIES",
	"GITLAB_BASE_URL",
	"LISTEN_ADDRESS",
	"GEMINI_API_KEY",
}

func TestNew(t *testing.T) {
	// Save original env vars
	original := make(map[string]string, len(configEnvVars))
	for _, key := range configEnvVars {
		original[key] = os.Getenv(key)
	}

	// Clean up after test
	defer func() {
		for _, key := range configEnvVars {
			if original[key] != "" {
				_ = os.Setenv(key, original[key])
			} else {
				_ = os.Unsetenv(key)
			}
		}
	}()

	setRequired := func() {
		_ = os.Setenv("TOKEN", "test-token")
		_ = os.Setenv("GROUP_FULL_PATH", "my-org/my-group")
		_ = os.Setenv("EPIC_ROOT_ID", "42")
	}

	tests := []struct {
		name        string
		setupEnv    func()
		expectError bool
		validate    func(*testing.T, *Config)
	}{
		{
			name:        "successful config creation with defaults",
			setupEnv:    setRequired,
			expectError: false,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "test-token", cfg.Token)
				assert.Equal(t, "my-org/my-group", cfg.GroupFullPath)
				assert.Equal(t, 42, cfg.RootEpicIID)
				assert.Equal(t, "https://gitlab.com", cfg.BaseURL)
				assert.Equal(t, ":8080", cfg.ListenAddress)
				assert.Equal(t, defaultTargetCategories, cfg.TargetCategories)
			},
		},
		{
			name: "custom base URL and listen address",
			setupEnv: func() {
				setRequired()
				_ = os.Setenv("GITLAB_BASE_URL", "https://gitlab.example.com")
				_ = os.Setenv("LISTEN_ADDRESS", "0.0.0.0:9090")
			},
			expectError: false,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://gitlab.example.com", cfg.BaseURL)
				assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddress)
			},
		},
		{
			name: "missing token",
			setupEnv: func() {
				_ = os.Setenv("GROUP_FULL_PATH", "my-org/my-group")
				_ = os.Setenv("EPIC_ROOT_ID", "42")
			},
			expectError: true,
		},
		{
			name: "missing group full path",
			setupEnv: func() {
				_ = os.Setenv("TOKEN", "test-token")
				_ = os.Setenv("EPIC_ROOT_ID", "42")
			},
			expectError: true,
		},
		{
			name: "missing root epic id",
			setupEnv: func() {
				_ = os.Setenv("TOKEN", "test-token")
				_ = os.Setenv("GROUP_FULL_PATH", "my-org/my-group")
			},
			expectError: true,
		},
		{
			name: "non-numeric root epic id",
			setupEnv: func() {
				setRequired()
				_ = os.Setenv("EPIC_ROOT_ID", "not-a-number")
			},
			expectError: true,
		},
		{
			name: "target categories with spaces",
			setupEnv: func() {
				setRequired()
				_ = os.Setenv("TARGET_CATEGORIES", "Design , Backend , Frontend")
			},
			expectError: false,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"Design", "Backend", "Frontend"}, cfg.TargetCategories)
			},
		},
		{
			name: "repository name",
			setupEnv: func() {
				setRequired()
				_ = os.Setenv("REPOSITORY_NAME", "My Project")
			},
			expectError: false,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "My Project", cfg.RepositoryName)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range configEnvVars {
				_ = os.Unsetenv(key)
			}

			tt.setupEnv()

			cfg, err := New()

			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, cfg)
				if tt.validate != nil {
					tt.validate(t, cfg)
				}
			}
		})
	}
}
