package project

import (
	"strings"
	"time"
)

// Kind distinguishes the two entity families a folder can group.
type Kind string

const (
	KindAsset Kind = "asset"
	KindShot  Kind = "shot"
)

// MainFolder is the reserved folder that receives entities with no explicit
// folder assignment. One exists per kind.
const MainFolder = "Main"

// Task statuses form a closed set.
const (
	StatusWIP      = "WIP"
	StatusReview   = "Review"
	StatusFinal    = "Final"
	StatusBlocked  = "Blocked"
	StatusComplete = "Complete"
)

// TaskStatuses returns the closed set of valid task statuses.
func TaskStatuses() []string {
	return []string{StatusWIP, StatusReview, StatusFinal, StatusBlocked, StatusComplete}
}

// Well-known metadata keys. The meta map stays open; these are the keys the
// tooling reads by convention.
const (
	MetaDescription = "description"
	MetaImagePath   = "image_path"
	MetaTags        = "tags"
)

// Department is a named discipline attached to projects and, by name
// reference, to entities.
type Department struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// Folder groups entity names of one kind. Membership is the source of truth
// for project organization; the hierarchy synchronizer derives entity lists
// from it.
type Folder struct {
	Name    string   `json:"name"`
	Kind    Kind     `json:"kind"`
	Members []string `json:"members"`
}

// Task tracks one unit of departmental work on an entity.
type Task struct {
	Name        string `json:"name"`
	Department  string `json:"department,omitempty"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
	EntityKey   string `json:"entity_key,omitempty"`
	EntityKind  Kind   `json:"entity_kind,omitempty"`
}

// Version records one authored iteration of an entity's work. Identifiers
// follow the vNNN pattern and are strictly increasing per entity.
type Version struct {
	Version      string         `json:"version"`
	User         string         `json:"user"`
	Comment      string         `json:"comment,omitempty"`
	Date         time.Time      `json:"date"`
	Path         string         `json:"path"`
	AppName      string         `json:"app_name,omitempty"`
	WorkfilePath string         `json:"workfile_path,omitempty"`
	Thumbnail    string         `json:"thumbnail,omitempty"`
	Status       string         `json:"status,omitempty"`
	TaskName     string         `json:"task_name,omitempty"`
	Meta         map[string]any `json:"meta,omitempty"`
}

// Asset is a named entity of kind asset. Name is unique among assets.
type Asset struct {
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Path        string         `json:"path,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
	Departments []string       `json:"departments,omitempty"`
	Versions    []Version      `json:"versions"`
}

// Key returns the entity key for the asset.
func (a *Asset) Key() string { return a.Name }

// Shot is a named entity of kind shot, identified by sequence/name.
type Shot struct {
	Sequence    string         `json:"sequence"`
	Name        string         `json:"name"`
	Path        string         `json:"path,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
	Departments []string       `json:"departments,omitempty"`
	Versions    []Version      `json:"versions"`
}

// Key returns the composite entity key "sequence/name".
func (s *Shot) Key() string { return s.Sequence + "/" + s.Name }

// SplitShotKey separates a composite shot key into sequence and name.
// ok is false when key has no separator.
func SplitShotKey(key string) (sequence, name string, ok bool) {
	sequence, name, ok = strings.Cut(key, "/")
	if !ok || sequence == "" || name == "" {
		return "", "", false
	}
	return sequence, name, true
}

// Entity is a read-only view of an asset or shot resolved by key.
type Entity struct {
	Key      string
	Kind     Kind
	Name     string
	Type     string
	Sequence string
	Path     string
}
