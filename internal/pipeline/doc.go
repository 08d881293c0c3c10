// Package pipeline persists the project graph as a single JSON document,
// written atomically so readers never observe a partial file.
package pipeline
