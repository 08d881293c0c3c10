// Package scan reconciles a project document with the directory tree it
// describes, adding entities and versions that exist on disk but are missing
// from the document. Scanning is additive only.
package scan
