// Package config loads service configuration from YAML files, .env files,
// and environment variables, in that order of increasing precedence.
package config
