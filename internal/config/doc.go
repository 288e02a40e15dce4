// Package config provides configuration management for the expense reporter.
// It loads settings from environment variables and an optional YAML file,
// validates them, and owns the resolved file-system paths every pipeline
// stage writes to.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. config.yaml, when present
//	3. Default values (lowest priority)
//
// All environment variables follow the pattern EXPENSE_* for namespacing,
// e.g. EXPENSE_PATHS_CHARTS_DIR or EXPENSE_LOGGING_LEVEL.
package config
