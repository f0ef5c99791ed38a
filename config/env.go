package config

import (
	"os"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment. Anything other than
// an explicit production setting is treated as development.
func GetEnvironment() Environment {
	if os.Getenv("ENV") == "production" {
		return Production
	}
	return Development
}

// IsProduction returns true if the current environment is production
func IsProduction() bool {
	return GetEnvironment() == Production
}
