// Package logging centralizes slog construction and the shared attribute
// vocabulary used across vogue components.
package logging
