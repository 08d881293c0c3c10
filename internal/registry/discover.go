package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"vogue/internal/pipeline"
)

// Discover walks each library root's immediate subdirectories and returns
// every directory holding a pipeline document, sorted by name. Unreadable
// roots and malformed documents are skipped.
func Discover(roots []string) []Entry {
	var found []Entry
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			dir := filepath.Join(root, entry.Name())
			docPath := pipeline.DocumentPath(dir)
			info, err := os.Stat(docPath)
			if err != nil || info.IsDir() {
				continue
			}
			name := documentName(docPath)
			if name == "" {
				name = entry.Name()
			}
			found = append(found, Entry{
				Name:       name,
				Path:       dir,
				LastOpened: info.ModTime().UTC(),
			})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found
}

// documentName pulls just the project name out of a pipeline document
// without validating the rest of it.
func documentName(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var doc struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return ""
	}
	return doc.Name
}
