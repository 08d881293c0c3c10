// Package config loads, normalizes, and validates vogue's TOML configuration.
package config
