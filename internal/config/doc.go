// Package config loads and validates the prematch TOML configuration.
//
// Configuration is resolved from an explicit --config path, then
// ~/.config/prematch/config.toml, then ./prematch.toml. Missing files are
// not an error; defaults apply.
package config
