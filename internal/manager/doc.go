// Package manager is the façade the CLI talks to. It loads and saves
// project documents, delegates version creation to the version engine,
// launches editing applications, and keeps the recent-projects registry
// current.
package manager
