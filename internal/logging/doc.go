// Package logging builds the slog loggers used across prematch and holds
// the shared attribute helpers and field name constants.
package logging
