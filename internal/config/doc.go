// Package config holds runtime configuration for blogsmith.
// Configuration is assembled from CLI flags, environment variables, and an
// optional YAML profile file, then passed through the application via
// dependency injection rather than global state.
package config
