// Package main is the entry point for the Mira OS app launcher.
//
// Mira OS scans a directory for scripts and launches each one in its own
// terminal window, keeping track of what it started so the operator can
// list and close apps from a single prompt.
//
// Configuration:
//   - Environment variables (MIRA_*, LOG_*, RATE_LIMIT_*)
//   - Optional YAML or TOML file (--config)
//   - CLI flags (override both)
//
// Usage:
//
//	# Interactive prompt over ./Modules
//	miraos
//
//	# Another directory, with the admin API on 127.0.0.1:8090
//	miraos --apps-dir ~/scripts --http
//
//	# List discovered apps and exit
//	miraos browse
//
//	# Admin API only, no prompt
//	miraos serve --config miraos.yaml
package main
