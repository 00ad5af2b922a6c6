// Package config defines the application configuration structure and the
// logic for loading it from environment variables and optional config
// files, with validation of required fields and value ranges.
package config
