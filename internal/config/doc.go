// Package config loads runtime configuration for the parsepush CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed PARSEPUSH_ (see parseEnv); a .env file
//     in the working directory is loaded first when present.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   data directory holding settings.db, secrets.db and templates.json
//	-h string   credential header: rest or master
//	-t int      request timeout (seconds, 0 disables)
//	-l string   log level: debug, info, warn, error
//	-e          keep everything in memory (nothing is written to disk)
//
// # JSON schema
//
//	{
//	  "data_dir": "/home/me/.config/ParsePushHelper",
//	  "auth_header": "rest",
//	  "request_timeout": "30s",
//	  "log_level": "info",
//	  "log_backend": "slog",
//	  "log_format": "text",
//	  "vault_passphrase": "...",
//	  "vault_service": "com.parsepushhelper.apikey",
//	  "require_secret": false,
//	  "ephemeral": false
//	}
//
// The vault passphrase can be given in JSON or as PARSEPUSH_VAULT_PASSPHRASE
// but never as a flag, so it does not show up in the process list.
package config
