// Package registry remembers recently opened projects in a small SQLite
// database and discovers projects under configured library roots.
package registry
