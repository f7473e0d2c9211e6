package config

import (
	"fmt"
	"os"

	"tracker-client/internal/repository/sqlite"
)

// CreateRepository opens the credential database named by the configuration,
// creating its directory when needed
func CreateRepository(config *Config) (sqlite.Repository, error) {
	if err := os.MkdirAll(config.Credentials.Dir, os.FileMode(config.Credentials.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create credentials directory: %w", err)
	}

	repo, err := sqlite.New(config.GetCredentialsPath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential store: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test credential store: %w", err)
	}

	return repo, nil
}
