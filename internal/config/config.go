package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	do "github.com/samber/do/v2"
)

var Package = do.Package(
	do.Lazy[*Config](NewConfig),
)

// defaultTargetCategories is the ordered label list used to bucket issues
// when TARGET_CATEGORIES is not set.
var defaultTargetCategories = []string{
	"Entwurf",
	"Implementation & Test",
	"Projektmanagement",
	"Requirements Engineering",
}

// Config holds the application configuration.
type Config struct {
	BaseURL          string
	Token            string
	GroupFullPath    string
	RootEpicIID      int
	RepositoryName   string
	TargetCategories []string
	ListenAddress    string
	// GeminiAPIKey is reserved for an AI-assisted feature and is not used
	// by the aggregator.
	GeminiAPIKey string
}

// NewConfig creates a new configuration from environment variables (for DI).
func NewConfig(_ do.Injector) (*Config, error) {
	return New()
}

// New creates a new configuration from environment variables.
func New() (*Config, error) {
	baseURL := os.Getenv("GITLAB_BASE_URL")
	if baseURL == "" {
		baseURL = "https://gitlab.com"
	}

	listenAddress := os.Getenv("LISTEN_ADDRESS")
	if listenAddress == "" {
		listenAddress = ":8080"
	}

	token := os.Getenv("TOKEN")
	if token == "" {
		return nil, errors.New("TOKEN environment variable is required")
	}

	groupFullPath := os.Getenv("GROUP_FULL_PATH")
	if groupFullPath == "" {
		return nil, errors.New("GROUP_FULL_PATH environment variable is required")
	}

	rootEpicStr := os.Getenv("EPIC_ROOT_ID")
	if rootEpicStr == "" {
		return nil, errors.New("EPIC_ROOT_ID environment variable is required")
	}
	rootEpicIID, err := strconv.Atoi(rootEpicStr)
	if err != nil {
		return nil, fmt.Errorf("EPIC_ROOT_ID must be an integer: %w", err)
	}

	targets := defaultTargetCategories
	if targetsStr := os.Getenv("TARGET_CATEGORIES"); targetsStr != "" {
		targets = strings.Split(targetsStr, ",")
		for i, target := range targets {
			targets[i] = strings.TrimSpace(target)
		}
	}

	return &Config{
		BaseURL:          baseURL,
		Token:            token,
		GroupFullPath:    groupFullPath,
		RootEpicIID:      rootEpicIID,
		RepositoryName:   os.Getenv("REPOSITORY_NAME"),
		TargetCategories: targets,
		ListenAddress:    listenAddress,
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
	}, nil
}
