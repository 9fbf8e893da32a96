// Package utils provides common utility functions for the mvcs-loader application.
// It includes helper functions for coercing loosely typed configuration values
// (as decoded from YAML, JSON, TOML or environment variables) into Go types.
package utils
