// Package config provides 12-factor configuration management for the launcher.
//
// Configuration is loaded from environment variables with sensible defaults.
// An optional YAML or TOML file named on the command line overlays the
// environment, and CLI flags override both.
//
// Configuration Sections:
//   - Apps: Scan root, qualifying extension, reserved prefix, exclude globs
//   - Launch: Interpreter, strategy, terminal preference, close timeout
//   - HTTP: Optional admin API bind address
//   - Logging: Log level and output format
//   - RateLimit: Admin API rate limiting
//
// Example Usage:
//
//	cfg, err := config.LoadFile("miraos.yaml")
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Scanning %s for *%s\n", cfg.Apps.Dir, cfg.Apps.Extension)
//
// Environment Variables:
//   - MIRA_APPS_DIR, MIRA_APP_EXT, MIRA_RESERVED_PREFIX, MIRA_EXCLUDE
//   - MIRA_INTERPRETER, MIRA_STRATEGY, MIRA_TERMINALS, MIRA_CLOSE_TIMEOUT
//   - MIRA_HTTP_ENABLED, MIRA_HTTP_HOST, MIRA_HTTP_PORT
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
