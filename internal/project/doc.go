// Package project holds the in-memory entity model: the project aggregate
// with its assets, shots, folders, departments, tasks, and versions.
//
// The model provides validated mutation and lookup only. Folder membership
// reconciliation lives in internal/hierarchy, version allocation in
// internal/versions, and durability in internal/pipeline.
package project
