// Package hierarchy reconciles folder membership against the project's
// entity lists. Folders are the source of truth for grouping; entity lists
// are derived data.
package hierarchy
