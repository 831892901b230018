// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// A .env file and ODP_* environment variables override file values, which
// lets the CLI point at a different endpoint without editing the file.
// When no file exists the defaults match the live Amsterdam feeds.
package config
