// Package versions implements the version engine: identifier allocation,
// placeholder and file-backed version creation, and task-scoped listing.
package versions
